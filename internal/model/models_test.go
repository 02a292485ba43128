// internal/model/models_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityType_Points(t *testing.T) {
	testCases := []struct {
		typ  ActivityType
		want int32
	}{
		{TypePush, 1},
		{TypePROpened, 10},
		{TypePRMerged, 50},
		{TypeIssueClosed, 20},
		{TypeCodeReview, 15},
	}
	for _, tc := range testCases {
		t.Run(string(tc.typ), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.Points())
		})
	}

	t.Run("unknown type scores zero", func(t *testing.T) {
		assert.Zero(t, ActivityType("FORK").Points())
	})
}

func TestActivityType_Valid(t *testing.T) {
	for _, typ := range []ActivityType{TypePush, TypePROpened, TypePRMerged, TypeIssueClosed, TypeCodeReview} {
		assert.True(t, typ.Valid(), "type %s", typ)
	}

	assert.False(t, ActivityType("FORK").Valid())
	assert.False(t, ActivityType("").Valid())
	assert.False(t, ActivityType("push").Valid(), "types are case sensitive")
}
