package app

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/QualifAIze/qualifaize-backend-api/internal/cache"
	"github.com/QualifAIze/qualifaize-backend-api/internal/config"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
	"github.com/QualifAIze/qualifaize-backend-api/internal/service"
	"github.com/QualifAIze/qualifaize-backend-api/internal/transport/ws"
)

// App wires repositories, caches, and services together
type App struct {
	InterviewRepo repository.InterviewRepo
	QuestionRepo  repository.QuestionRepo
	DocumentRepo  repository.DocumentRepo
	UserRepo      repository.UserRepo

	OrderCache    cache.OrderCache
	ProgressCache cache.ProgressCache

	AuthService      *service.AuthService
	UserService      *service.UserService
	DocumentService  *service.DocumentService
	GeneratorService *service.GeneratorService
	ReviewService    *service.ReviewService
	InterviewService *service.InterviewService
	QuestionService  *service.QuestionService

	WSHub *ws.Hub
}

// New builds the full service graph
func New(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *App {
	interviewRepo := repository.NewInterviewRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	documentRepo := repository.NewDocumentRepo(db)
	userRepo := repository.NewUserRepo(db)

	orderCache := cache.NewOrderCache(rdb)
	progressCache := cache.NewProgressCache(rdb)

	wsHub := ws.NewHub()

	authSvc := service.NewAuthService(cfg.Auth)
	userSvc := service.NewUserService(userRepo)
	documentSvc := service.NewDocumentService(documentRepo)
	generatorSvc := service.NewGeneratorService(cfg.AI)
	reviewSvc := service.NewReviewService(interviewRepo, questionRepo, documentRepo, userRepo, generatorSvc)
	interviewSvc := service.NewInterviewService(interviewRepo, questionRepo, documentRepo, userSvc, reviewSvc)
	questionSvc := service.NewQuestionService(questionRepo, interviewSvc, documentSvc, generatorSvc, orderCache, progressCache)

	// wsHub implements service.Broadcaster
	reviewSvc.SetBroadcaster(wsHub)
	interviewSvc.SetBroadcaster(wsHub)
	questionSvc.SetBroadcaster(wsHub)

	return &App{
		InterviewRepo:    interviewRepo,
		QuestionRepo:     questionRepo,
		DocumentRepo:     documentRepo,
		UserRepo:         userRepo,
		OrderCache:       orderCache,
		ProgressCache:    progressCache,
		AuthService:      authSvc,
		UserService:      userSvc,
		DocumentService:  documentSvc,
		GeneratorService: generatorSvc,
		ReviewService:    reviewSvc,
		InterviewService: interviewSvc,
		QuestionService:  questionSvc,
		WSHub:            wsHub,
	}
}
