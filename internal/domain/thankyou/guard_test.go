package thankyou

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanEdit(t *testing.T) {
	ty := Restore(1, UserRef{ID: 10}, "Hi", testNow, testNow, 1, nil, nil, nil)

	tests := []struct {
		name      string
		actor     Actor
		adminMode bool
		want      bool
	}{
		{"author without admin mode", Actor{UserID: 10}, false, true},
		{"author with admin mode", Actor{UserID: 10}, true, true},
		{"admin author without admin mode", Actor{UserID: 10, IsAdmin: true}, false, true},
		{"non-author plain user", Actor{UserID: 11}, true, false},
		{"non-author admin without admin mode", Actor{UserID: 11, IsAdmin: true}, false, false},
		{"non-author admin with admin mode", Actor{UserID: 11, IsAdmin: true}, true, true},
		{"anonymous", Actor{}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(ty, tt.actor, tt.adminMode))
			assert.Equal(t, tt.want, CanDelete(ty, tt.actor, tt.adminMode))
		})
	}

	t.Run("nil thank you", func(t *testing.T) {
		assert.False(t, CanEdit(nil, Actor{UserID: 10}, true))
	})
}
