package main

import (
	"communityhub/internal/config"
	"communityhub/internal/handler"
	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository/kafka"
	"communityhub/internal/repository/mysql"
	"communityhub/internal/repository/redis"
	"communityhub/internal/router"
	"communityhub/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := pkg.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatal("mysql init failed", zap.Error(err))
	}
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatal("redis init failed", zap.Error(err))
	}
	defer redis.Close()

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Category{},
		&model.Community{},
		&model.CommunityMember{},
		&model.CommunityRule{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.Report{},
		&model.Appeal{},
		&model.AuditLog{},
		&model.Configuration{},
		&model.SearchLog{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	var producer *kafka.AuditWriter
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewAuditWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	db := mysql.DB
	users := mysql.NewUserRepository(db)
	sessions := mysql.NewSessionRepository(db)
	categories := mysql.NewCategoryRepository(db)
	communities := mysql.NewCommunityRepository(db)
	members := mysql.NewMemberRepository(db)
	posts := mysql.NewPostRepository(db)
	comments := mysql.NewCommentRepository(db)
	votes := mysql.NewVoteRepository(db)
	reports := mysql.NewReportRepository(db)
	audits := mysql.NewAuditRepository(db)
	configs := mysql.NewConfigRepository(db)
	searchLogs := mysql.NewSearchLogRepository(db)

	tokens := redis.NewSessionStore()
	scores := redis.NewScoreCache()
	maker := pkg.NewTokenMaker(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	auditSvc := service.NewAuditService(audits, producer, log)
	authSvc := service.NewAuthService(users, sessions, tokens, maker, auditSvc)
	categorySvc := service.NewCategoryService(categories, auditSvc)
	communitySvc := service.NewCommunityService(communities, members, categories, auditSvc)
	postSvc := service.NewPostService(posts, communities, members)
	commentSvc := service.NewCommentService(comments, posts)
	voteSvc := service.NewVoteService(votes, posts, comments, scores)
	moderationSvc := service.NewModerationService(reports, posts, comments, auditSvc)
	configSvc := service.NewConfigurationService(configs, auditSvc)
	searchSvc := service.NewSearchService(posts, communities, searchLogs, log)

	r := router.InitRouter(router.Deps{
		Maker:      maker,
		Tokens:     tokens,
		Log:        log,
		Auth:       handler.NewAuthHandler(authSvc),
		Category:   handler.NewCategoryHandler(categorySvc),
		Community:  handler.NewCommunityHandler(communitySvc),
		Post:       handler.NewPostHandler(postSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Vote:       handler.NewVoteHandler(voteSvc),
		Moderation: handler.NewModerationHandler(moderationSvc),
		Admin:      handler.NewAdminHandler(auditSvc, configSvc, searchSvc),
		Search:     handler.NewSearchHandler(searchSvc),
	})

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
