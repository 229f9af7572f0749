package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sunstone/internal/adapter/api"
	"sunstone/internal/adapter/api/handler"
	apimiddleware "sunstone/internal/adapter/api/middleware"
	"sunstone/internal/adapter/api/router"
	"sunstone/internal/adapter/repository"
	"sunstone/internal/domain/service"
	"sunstone/internal/infrastructure/firebase"
	"sunstone/internal/infrastructure/ratelimit"
	"sunstone/internal/infrastructure/storage"
	"sunstone/internal/infrastructure/websocket"
	"sunstone/internal/usecase"
	"sunstone/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account from env var in production, file path locally.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	commentRepo := repository.NewFirestoreCommentRepository(firestoreClient)
	merchRepo := repository.NewFirestoreMerchRepository(firestoreClient)
	roleRepo := repository.NewFirestoreRoleRepository(firestoreClient)
	assetRepo := repository.NewFirestoreAssetRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()

	roleUseCase := usecase.NewRoleUseCase(roleRepo)
	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, roleUseCase)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, roleUseCase, firebaseAuthClient)
	merchUseCase := usecase.NewMerchUseCase(merchRepo, service.NewSpinDrawer(), cfg.MerchCatalogIDs)
	revealUseCase := usecase.NewRevealUseCase(cfg.RevealThreshold)
	assetUseCase := usecase.NewAssetUseCase(assetRepo, storageClient)

	feedUseCase := usecase.NewFeedUseCase(commentRepo, roleUseCase, wsManager)
	feedUseCase.Start(ctx)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	handler.Setup(authUseCase, commentUseCase, merchUseCase, roleUseCase, revealUseCase)
	handler.SetupAssetHandler(assetUseCase)
	handler.SetupDevTokenHandler(authUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(roleRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	feedHandler := handler.NewFeedHandler(wsManager)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	router.SetupFeedRouter(e, feedHandler)
	router.SetupAssetRouter(e, authMiddleware, adminMiddleware)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
