package tier_test

import (
	"testing"

	"github.com/jcpaschoal/platform-analytics/business/types/tier"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		logins int
		want   tier.Tier
	}{
		{100, tier.Power},
		{40, tier.Power},
		{39, tier.Regular},
		{8, tier.Regular},
		{7, tier.Light},
		{1, tier.Light},
		{0, tier.Dormant},
	}

	for _, tt := range tests {
		if got := tier.Classify(tt.logins); !got.Equal(tt.want) {
			t.Errorf("classify(%d): got %s, want %s", tt.logins, got, tt.want)
		}
	}
}
