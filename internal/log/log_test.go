package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tidy/internal/log"
)

func TestCtxWithValues(t *testing.T) {
	tests := map[string]struct {
		ctx    func() context.Context
		values log.Kv
		expKv  log.Kv
	}{
		"A context without values should return empty values.": {
			ctx:   context.Background,
			expKv: log.Kv{},
		},
		"Values should be set on the context.": {
			ctx:    context.Background,
			values: log.Kv{"cmd": "add"},
			expKv:  log.Kv{"cmd": "add"},
		},
		"Values should be merged with the parent ones, new ones win.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"cmd": "add", "svc": "x"})
			},
			values: log.Kv{"svc": "y"},
			expKv:  log.Kv{"cmd": "add", "svc": "y"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := log.CtxWithValues(test.ctx(), test.values)
			assert.Equal(t, test.expKv, log.ValuesFromCtx(ctx))
		})
	}
}

func TestNoopKeepsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, log.Noop.SetValuesOnCtx(ctx, log.Kv{"cmd": "add"}))
	assert.Equal(t, log.Noop, log.Noop.WithCtxValues(ctx))
}
