// Package tracker is the attendance tracking service: it issues session
// tokens, hands out attendance challenges to students and records the
// presences teachers scan
package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rollcall/internal/common"
	"rollcall/internal/tracker/docs"
	"rollcall/internal/tracker/models"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	DefaultChallengeTtl = 60 * time.Second
	DefaultSessionTtl   = 12 * time.Hour
)

type HttpApplicationOpts struct {
	// ChallengeSecret signs attendance challenges, it should differ from
	// SessionSecret
	ChallengeSecret string

	// ChallengeTtl is how long an issued challenge can be redeemed for
	ChallengeTtl time.Duration

	// ChallengeRateBurst and ChallengeRateInterval throttle challenge
	// requests per student
	ChallengeRateBurst    int
	ChallengeRateInterval time.Duration

	// Events is notified of recorded presences, optional
	Events Events

	// Ledger tracks which challenge is the latest one per student
	Ledger Ledger

	// LivenessChecks are sequentially executed when /healthz is hit
	LivenessChecks []func() error

	// ReadinessChecks are sequentially executed when /readyz is hit
	ReadinessChecks []func() error

	// Now defaults to time.Now
	Now func() time.Time

	Repository models.Repository

	// ServiceLogs is a centralised channel where logs get sent to
	ServiceLogs chan<- common.ServiceLog

	// SessionSecret signs session tokens, changing it logs everyone out
	SessionSecret string

	// SessionTtl is the validity of a session token
	SessionTtl time.Duration
}

func (o HttpApplicationOpts) Validate() error {
	errs := []error{}
	if o.ChallengeSecret == "" {
		errs = append(errs, fmt.Errorf("failed to receive a challenge secret: %w", ErrorMissingChallengeSecret))
	}
	if o.Ledger == nil {
		errs = append(errs, fmt.Errorf("failed to receive a challenge ledger: %w", ErrorMissingLedger))
	}
	if o.Repository == nil {
		errs = append(errs, fmt.Errorf("failed to receive a repository: %w", ErrorMissingRepository))
	}
	if o.ServiceLogs == nil {
		errs = append(errs, fmt.Errorf("failed to receive a service log: %w", ErrorMissingServiceLog))
	}
	if o.SessionSecret == "" {
		errs = append(errs, fmt.Errorf("failed to receive a session secret: %w", ErrorMissingSessionSecret))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

type application struct {
	challengeSecret string
	challengeTtl    time.Duration
	events          Events
	ledger          Ledger
	limiter         *studentLimiter
	now             func() time.Time
	repository      models.Repository
	serviceLogs     chan<- common.ServiceLog
	sessionSecret   string
	sessionTtl      time.Duration
}

func GetHttpApplication(opts HttpApplicationOpts) (http.Handler, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialise http application: %w", err)
	}
	app := &application{
		challengeSecret: opts.ChallengeSecret,
		challengeTtl:    opts.ChallengeTtl,
		events:          opts.Events,
		ledger:          opts.Ledger,
		limiter:         newStudentLimiter(opts.ChallengeRateBurst, opts.ChallengeRateInterval),
		now:             opts.Now,
		repository:      opts.Repository,
		serviceLogs:     opts.ServiceLogs,
		sessionSecret:   opts.SessionSecret,
		sessionTtl:      opts.SessionTtl,
	}
	if app.challengeTtl <= 0 {
		app.challengeTtl = DefaultChallengeTtl
	}
	if app.sessionTtl <= 0 {
		app.sessionTtl = DefaultSessionTtl
	}
	if app.now == nil {
		app.now = time.Now
	}
	if app.events == nil {
		app.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "presence events are not enabled")
		app.events = noopEvents{}
	}
	app.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "challenges are valid for %v", app.challengeTtl)

	handler := mux.NewRouter()
	handler.NotFoundHandler = common.GetNotFoundHandler()
	handler.Use(common.GetCommonMetricsMiddleware(app.serviceLogs))
	common.RegisterCommonHttpEndpoints(common.CommonHttpEndpointsOpts{
		Router:          handler,
		ServiceLogs:     app.serviceLogs,
		LivenessChecks:  opts.LivenessChecks,
		ReadinessChecks: opts.ReadinessChecks,
	})

	handler.PathPrefix("/docs").Handler(httpSwagger.Handler(httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))
	handler.HandleFunc("/auth/login", app.handleLoginV1).Methods(http.MethodPost)

	authed := handler.NewRoute().Subrouter()
	authed.Use(app.getRouteAuther())
	authed.HandleFunc("/class/qrcode", requireStudent(app.handleCreateChallengeV1)).Methods(http.MethodPost)
	authed.HandleFunc("/class/checkin", requireTeacher(app.handleCheckinV1)).Methods(http.MethodPost)
	authed.HandleFunc("/class/{classSessionId:[0-9]+}/password", requireTeacher(app.handleGetClassPasswordV1)).Methods(http.MethodGet)
	authed.HandleFunc("/student/today", requireStudent(app.handleGetStudentTodayV1)).Methods(http.MethodGet)
	authed.HandleFunc("/teacher/today", requireTeacher(app.handleGetTeacherTodayV1)).Methods(http.MethodGet)
	authed.HandleFunc("/uc/list", app.handleListCourseUnitsV1).Methods(http.MethodGet)

	if err := handler.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}
		app.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "registered route[%s] with methods[%s]", pathTemplate, strings.Join(methods, "|"))
		return nil
	}); err != nil {
		return nil, err
	}

	return handler, nil
}
