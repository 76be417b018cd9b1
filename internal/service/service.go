// Package service implements the conversational orchestration engine.
package service

import (
	"github.com/taskchat/agent/internal/config"
	"github.com/taskchat/agent/internal/provider"
	"github.com/taskchat/agent/internal/repository"
	"github.com/taskchat/agent/internal/tools"
	"github.com/taskchat/agent/policy"
)

// Service orchestrates one conversational turn: context assembly, completion,
// tool dispatch and response synthesis. It holds no per-request state; every
// invocation rebuilds its context from the store.
type Service struct {
	store        repository.Store
	provider     provider.CompletionProvider
	registry     *tools.Registry
	policyEngine *policy.Engine
	config       *config.Config
}

// New creates the orchestration service.
func New(store repository.Store, completionProvider provider.CompletionProvider, registry *tools.Registry, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		provider:     completionProvider,
		registry:     registry,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
