package testutil

import (
	"context"
	"testing"
)

// Scenario threads one fixture and the test's context through nested
// Given/When/Then steps. Each step runs as a subtest named after its prefix
// and description.
type Scenario[F any] struct {
	T       *testing.T
	Ctx     context.Context
	Fixture F
}

// NewScenario starts a scenario whose context ends with t.
func NewScenario[F any](t *testing.T, fixture F) *Scenario[F] {
	t.Helper()
	return &Scenario[F]{T: t, Ctx: t.Context(), Fixture: fixture}
}

func (s *Scenario[F]) Given(desc string, fn func(s *Scenario[F])) {
	s.T.Helper()
	s.step("Given "+desc, fn)
}

func (s *Scenario[F]) When(desc string, fn func(s *Scenario[F])) {
	s.T.Helper()
	s.step("When "+desc, fn)
}

func (s *Scenario[F]) Then(desc string, fn func(s *Scenario[F])) {
	s.T.Helper()
	s.step("Then "+desc, fn)
}

func (s *Scenario[F]) step(name string, fn func(s *Scenario[F])) {
	s.T.Run(name, func(t *testing.T) {
		fn(&Scenario[F]{T: t, Ctx: s.Ctx, Fixture: s.Fixture})
	})
}
