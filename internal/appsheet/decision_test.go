package appsheet

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		bodyLen      int
		transportErr bool
		want         action
	}{
		{"success", 200, 42, false, accept},
		{"empty 200", 200, 0, false, advanceVariant},
		{"rate limited", 429, 10, false, retrySame},
		{"server error", 500, 0, false, retrySame},
		{"bad gateway", 502, 0, false, retrySame},
		{"unavailable", 503, 0, false, retrySame},
		{"moved", 301, 0, false, redirect},
		{"found", 302, 0, false, redirect},
		{"temporary redirect", 307, 0, false, redirect},
		{"forbidden", 403, 10, false, reject},
		{"not found", 404, 10, false, reject},
		{"bad request", 400, 10, false, reject},
		{"transport failure", 0, 0, true, retrySame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.status, tt.bodyLen, tt.transportErr)
			if got != tt.want {
				t.Errorf("classify(%d, %d, %v) = %v, want %v",
					tt.status, tt.bodyLen, tt.transportErr, got, tt.want)
			}
		})
	}
}

func TestPlacementString(t *testing.T) {
	placements := map[placement]string{
		placementBoth:             "header+query",
		placementHeader:           "header",
		placementQuery:            "query",
		placementHeaderAssignment: "header-assignment",
	}

	for p, want := range placements {
		if got := p.String(); got != want {
			t.Errorf("placement(%d).String() = %q, want %q", p, got, want)
		}
	}
}
