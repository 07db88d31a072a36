package client

import "github.com/dmitrijs2005/petguard/internal/common"

var (
	ErrUnavailable  = common.ErrUnavailable
	ErrUnauthorized = common.ErrorUnauthorized
)
