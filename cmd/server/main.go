package main

import (
	"log"

	"github.com/joho/godotenv"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/config"
	"urbancart-backend/internal/db"
	"urbancart-backend/internal/handlers"
	"urbancart-backend/internal/services"
	"urbancart-backend/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.FromEnv()

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()
	log.Println("connected to MongoDB")

	database := client.Database(cfg.MongoDB)

	uploader, err := upload.NewCloudinary(cfg.CloudinaryURL, "urbancart")
	if err != nil {
		log.Fatalf("cloudinary setup: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret)
	productService := services.NewProductService(database)

	router := handlers.NewRouter(handlers.Deps{
		Tokens:     tokens,
		Resolver:   services.NewPrincipalService(database),
		Users:      services.NewUserService(database),
		Admins:     services.NewAdminService(database),
		Products:   productService,
		Reviews:    productService,
		Slider:     services.NewSliderService(database),
		Uploads:    uploader,
		CORSOrigin: cfg.CORSOrigin,
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
