package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dentalms/internal/config"
	"dentalms/internal/database"
	"dentalms/internal/domain/doctors"
	"dentalms/internal/domain/files"
	"dentalms/internal/domain/patients"
	"dentalms/internal/middleware"
	jwtsvc "dentalms/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&doctors.Doctor{}, &patients.Patient{}, &files.File{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	store, err := files.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	doctorService := doctors.NewService(doctors.NewRepository(db), j)
	doctorHandler := doctors.NewHandler(doctorService)

	patientService := patients.NewService(patients.NewRepository(db))
	patientHandler := patients.NewHandler(patientService)

	fileService := files.NewService(files.NewRepository(db), store, patientService, cfg.FileTypes, cfg.MaxUploadSize)
	fileHandler := files.NewHandler(fileService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	headerAuth := middleware.JWTAuth(j)
	dualAuth := middleware.JWTAuthWithQueryToken(j, "token")

	v1 := r.Group("/api/v1")
	{
		// public
		doctors.RegisterRoutes(v1, doctorHandler)

		// protected
		protected := v1.Group("/")
		protected.Use(headerAuth)
		{
			patients.RegisterRoutes(protected, patientHandler)
		}

		// file routes attach their own auth: the download endpoint also
		// accepts a query-carried token for <img>/<iframe> embeds.
		files.RegisterRoutes(v1, fileHandler, headerAuth, dualAuth)
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
