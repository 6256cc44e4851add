package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"subhealth/database"
	"subhealth/internal/models"
	"subhealth/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }

func main() {
	email := flag.String("email", "demo@subhealth.local", "Email of the demo user to create")
	password := flag.String("password", "demo-password-1", "Password of the demo user")
	days := flag.Int("days", 30, "Days of metric history to generate")
	flag.Parse()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	labRepo := repository.NewLabRepository(database.DB)
	vitalsRepo := repository.NewVitalsRepository(database.DB)
	lifestyleRepo := repository.NewLifestyleRepository(database.DB)
	allergyRepo := repository.NewAllergyRepository(database.DB)
	familyRepo := repository.NewFamilyHistoryRepository(database.DB)
	geneticRepo := repository.NewGeneticRepository(database.DB)
	metricsRepo := repository.NewMetricsRepository(database.DB)
	riskScoreRepo := repository.NewRiskScoreRepository(database.DB)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:       "Demo User",
		Email:      *email,
		Password:   string(hash),
		AgeYears:   iptr(38),
		SexAtBirth: sptr("male"),
	}
	if err := userRepo.CreateUser(user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (id %d)", user.Email, user.ID)

	panel := &models.LabPanel{
		UserID:             user.ID,
		TakenAt:            time.Now().AddDate(0, -1, 0),
		FastingGlucoseMgDl: fptr(104),
		HbA1cPercent:       fptr(6.0),
		CreatinineMgDl:     fptr(1.25),
		EgfrMlMin:          fptr(72),
		HdlMgDl:            fptr(38),
		LdlMgDl:            fptr(144),
		TrigMgDl:           fptr(180),
		TshUluMl:           fptr(5.1),
		VitD25OhNgMl:       fptr(18),
		CrpMgL:             fptr(3.4),
	}
	if err := labRepo.SavePanel(panel); err != nil {
		log.Fatalf("Failed to seed lab panel: %v", err)
	}

	vitals := &models.VitalsRecord{
		UserID:        user.ID,
		TakenAt:       time.Now().AddDate(0, 0, -2),
		SystolicMmHg:  fptr(136),
		DiastolicMmHg: fptr(88),
		HeartRateBpm:  fptr(74),
		BMI:           fptr(31.2),
	}
	if err := vitalsRepo.SaveRecord(vitals); err != nil {
		log.Fatalf("Failed to seed vitals: %v", err)
	}

	supplements := `{"creatine":{"using":true,"dose_g":5},"vitamin_d":{"using":true}}`
	profile := &models.LifestyleProfile{
		UserID:             user.ID,
		SleepHoursWorkdays: fptr(5.5),
		SleepHoursWeekends: fptr(7.0),
		ActivityLevel:      sptr(models.ActivityLevelLow),
		SmokerStatus:       sptr("never"),
		StressLevel:        sptr(models.StressLevelHigh),
		AlcoholPerWeek:     fptr(3),
		SupplementsJSON:    &supplements,
	}
	if err := lifestyleRepo.SaveProfile(profile); err != nil {
		log.Fatalf("Failed to seed lifestyle profile: %v", err)
	}

	for i := 0; i < 2; i++ {
		workout := &models.LifestyleWorkout{
			UserID:    user.ID,
			StartedAt: time.Now().AddDate(0, 0, -(i*3 + 1)),
			Kind:      "strength",
			Minutes:   45,
		}
		if err := lifestyleRepo.SaveWorkout(workout); err != nil {
			log.Fatalf("Failed to seed workout: %v", err)
		}
	}

	allergens := []struct {
		name  string
		ige   float64
		class int
	}{
		{"birch pollen", 18.2, 4},
		{"house dust mite", 6.1, 3},
		{"cat dander", 0.8, 2},
	}
	for _, a := range allergens {
		row := &models.AllergyLabResult{
			UserID:   user.ID,
			TestName: a.name,
			IgEKuL:   fptr(a.ige),
			Class:    iptr(a.class),
		}
		if err := allergyRepo.SaveLabResult(row); err != nil {
			log.Fatalf("Failed to seed allergy result: %v", err)
		}
	}
	report := &models.AllergySymptomReport{
		UserID:    user.ID,
		Severity:  sptr("moderate"),
		Frequency: sptr("often"),
	}
	if err := allergyRepo.SaveSymptomReport(report); err != nil {
		log.Fatalf("Failed to seed symptom report: %v", err)
	}

	family := []models.FamilyHistoryRecord{
		{UserID: user.ID, Condition: "type 2 diabetes", Relation: "father", AgeOfOnset: iptr(52)},
		{UserID: user.ID, Condition: "coronary heart disease", Relation: "grandfather", AgeOfOnset: iptr(63)},
	}
	for i := range family {
		if err := familyRepo.SaveRecord(&family[i]); err != nil {
			log.Fatalf("Failed to seed family history: %v", err)
		}
	}

	marker := &models.GeneticMarker{
		UserID:        user.ID,
		Marker:        "APOE4",
		Variant:       "heterozygous",
		EvidenceLevel: sptr(models.EvidenceLevelHigh),
	}
	if err := geneticRepo.SaveMarker(marker); err != nil {
		log.Fatalf("Failed to seed genetic marker: %v", err)
	}

	// Metric history with a mild weekly rhythm so baselines and flags
	// have something to chew on.
	for i := 0; i < *days; i++ {
		day := time.Now().UTC().AddDate(0, 0, -i)
		wave := math.Sin(float64(i) / 3.0)
		metric := &models.DailyMetric{
			UserID:       user.ID,
			Day:          day.Format("2006-01-02"),
			Rhr:          fptr(76 + 6*wave),
			HrvAvg:       fptr(42 - 5*wave),
			SleepMinutes: fptr(360 + 40*wave),
			Steps:        fptr(6500 + 1500*wave),
		}
		if err := metricsRepo.SaveMetric(metric); err != nil {
			log.Fatalf("Failed to seed metric for %s: %v", metric.Day, err)
		}

		score := &models.RiskScore{
			UserID:       user.ID,
			Day:          metric.Day,
			ModelVersion: models.ModelVersionWearable,
			RiskScore:    clamp01(0.45 + 0.1*wave),
		}
		if err := riskScoreRepo.SaveScore(score); err != nil {
			log.Fatalf("Failed to seed wearable score for %s: %v", metric.Day, err)
		}
	}

	fmt.Printf("Seeded demo user %s with %d days of metrics\n", *email, *days)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
