package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/satfield/sfa-backend-go/internal/config"
	appHTTP "github.com/satfield/sfa-backend-go/internal/handler/http"
	"github.com/satfield/sfa-backend-go/internal/pkg/cache"
	"github.com/satfield/sfa-backend-go/internal/pkg/database"
	"github.com/satfield/sfa-backend-go/internal/repository/postgresql"
	attendanceService "github.com/satfield/sfa-backend-go/internal/service/attendance"
	leaderboardService "github.com/satfield/sfa-backend-go/internal/service/leaderboard"
	performanceService "github.com/satfield/sfa-backend-go/internal/service/performance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	targetRepo := postgresql.NewTargetRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)

	loc := cfg.Location()
	results := cache.New(cfg.Cache.TTL, time.Now)

	deadlines, err := attendanceService.DeadlinesFromConfig(cfg.Attendance)
	if err != nil {
		log.Fatal("Invalid attendance deadlines: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, postgresql.NewTransactor(db), deadlines, loc, nil, nil)
	performanceSvc := performanceService.NewPerformanceService(
		recordRepo,
		targetRepo,
		results,
		loc,
		cfg.App.WeekStartsOn,
		nil,
		nil,
	)
	leaderboardSvc := leaderboardService.NewLeaderboardService(recordRepo, profileRepo, results, nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	performanceHandler := appHTTP.NewPerformanceHandler(performanceSvc, loc, cfg.App.WeekStartsOn)
	leaderboardHandler := appHTTP.NewLeaderboardHandler(leaderboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		attendanceHandler,
		performanceHandler,
		leaderboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
