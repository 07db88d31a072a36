package services

import "github.com/dmitrijs2005/petguard/internal/server/repositories/repomanager"

// NewMemLedger exposes the in-memory repository manager to external tests.
func NewMemLedger() repomanager.RepositoryManager { return newMemLedger() }
