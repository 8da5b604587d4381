package advisor

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/zenfit/internal/telemetry/tracing"
	"github.com/2beens/zenfit/internal/workout"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=advisor_test

const (
	// RecentSessionsCount is how many of the latest sessions feed the prompt.
	RecentSessionsCount = 8

	promptTemplate = `Analiza mi progreso de entrenamiento basado en estas sesiones: %s.
Fíjate especialmente en si estoy alternando running y gimnasio.
Dame un consejo motivador corto y minimalista para mejorar mi rendimiento. Máximo 2 frases en español.`

	// FallbackEmptyResponse is returned when the generator answers with a blank text.
	FallbackEmptyResponse = "Sigue dándolo todo, la constancia es la clave del éxito."
	// FallbackGenerateError is returned when the generator call fails in any way.
	FallbackGenerateError = "Tu progreso es excelente. ¡La regularidad vence al talento!"

	cacheExpireSeconds = 10 * 60
)

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type sessionsLister interface {
	ListAll(ctx context.Context) []workout.Session
}

// Service produces a short coaching advisory from the most recent
// sessions. It never fails: any problem with the external generator is
// swallowed and answered with one of the fixed fallback strings.
type Service struct {
	sessions  sessionsLister
	generator textGenerator
	cache     *freecache.Cache
}

func NewService(
	sessions sessionsLister,
	generator textGenerator,
	cacheSizeMegabytes int,
) *Service {
	megabyte := 1024 * 1024
	return &Service{
		sessions:  sessions,
		generator: generator,
		cache:     freecache.NewCache(cacheSizeMegabytes * megabyte),
	}
}

// Advise returns a displayable advisory string and whether it is one of
// the fallbacks. Exactly one generator attempt per call (cache hits make
// none); errors never escape.
func (s *Service) Advise(ctx context.Context) (advice string, fromFallback bool) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisor.service.advise")
	defer span.End()

	recentSessions := s.recentSessions(ctx)
	recentJson, err := json.Marshal(recentSessions)
	if err != nil {
		log.Errorf("advisor: failed to marshal recent sessions: %s", err)
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackGenerateError, true
	}

	cacheKey := []byte(fmt.Sprintf("advisory::%x", sha1.Sum(recentJson)))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		log.Tracef("advisor: found cached advisory for current sessions")
		span.SetAttributes(attribute.Bool("from-cache", true))
		return string(cached), false
	}

	prompt := fmt.Sprintf(promptTemplate, recentJson)
	generated, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Errorf("advisor: text generation failed: %s", err)
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackGenerateError, true
	}

	generated = strings.TrimSpace(generated)
	if generated == "" {
		log.Warnf("advisor: text generation returned empty response")
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackEmptyResponse, true
	}

	if err := s.cache.Set(cacheKey, []byte(generated), cacheExpireSeconds); err != nil {
		log.Errorf("advisor: failed to cache advisory: %s", err)
	}

	return generated, false
}

func (s *Service) recentSessions(ctx context.Context) []workout.Session {
	all := s.sessions.ListAll(ctx)
	if len(all) > RecentSessionsCount {
		all = all[len(all)-RecentSessionsCount:]
	}
	return all
}
