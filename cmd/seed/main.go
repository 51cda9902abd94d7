package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"dentalms/internal/config"
	"dentalms/internal/database"
	"dentalms/internal/domain/doctors"
	"dentalms/internal/domain/files"
	"dentalms/internal/domain/patients"
)

// Seeds a local database with a demo doctor, a few patients and sample
// files so the API is explorable right after checkout.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&doctors.Doctor{}, &patients.Patient{}, &files.File{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	doctor := doctors.Doctor{Username: "demo", PasswordHash: string(hash), CreatedAt: time.Now()}
	if err := db.Where(doctors.Doctor{Username: doctor.Username}).FirstOrCreate(&doctor).Error; err != nil {
		log.Fatal(err)
	}
	log.Printf("doctor ready: %s (id=%d)", doctor.Username, doctor.ID)

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal(err)
	}

	samplePatients := []patients.Patient{
		{Name: "Alice Morgan", DOB: "1988-04-12", UniqueID: "P-0001", Tags: "implant", CreatedAt: time.Now()},
		{Name: "Boris Tan", DOB: "1975-11-02", UniqueID: "P-0002", Tags: "ortho", CreatedAt: time.Now()},
		{Name: "Carla Reyes", DOB: "1996-07-29", UniqueID: "P-0003", CreatedAt: time.Now()},
	}

	for i := range samplePatients {
		p := &samplePatients[i]
		if err := db.Where(patients.Patient{UniqueID: p.UniqueID}).FirstOrCreate(p).Error; err != nil {
			log.Fatal(err)
		}

		blobName := fmt.Sprintf("seed_%s_xray.png", p.UniqueID)
		blobPath := filepath.Join(cfg.UploadDir, blobName)
		if err := os.WriteFile(blobPath, []byte("not a real x-ray\n"), 0644); err != nil {
			log.Fatal(err)
		}

		f := files.File{PatientID: p.ID, FilePath: blobName, FileType: "xray", UploadedAt: time.Now()}
		if err := db.Where(files.File{PatientID: p.ID, FilePath: blobName}).FirstOrCreate(&f).Error; err != nil {
			log.Fatal(err)
		}
		log.Printf("patient %s seeded with file id=%d", p.UniqueID, f.ID)
	}

	log.Println("seed complete")
}
