package domain_test

import (
	"testing"

	"github.com/jonesrussell/golinkcheck/internal/domain"
)

func TestDestination_ApplyOutcome(t *testing.T) {
	t.Parallel()

	d := domain.NewDestination("http://a/page")

	if d.WasTried() {
		t.Error("fresh destination should not be tried")
	}

	d.ApplyOutcome(domain.Outcome{StatusCode: 200})

	if !d.WasTried() || d.IsBroken() {
		t.Errorf("expected tried and live, got %+v", d)
	}
}

func TestDestination_ApplyOutcomeTwicePanics(t *testing.T) {
	t.Parallel()

	d := domain.NewDestination("http://a/page")
	d.ApplyOutcome(domain.Outcome{StatusCode: 200})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second outcome")
		}
	}()

	d.ApplyOutcome(domain.Outcome{StatusCode: 500})
}

func TestDestination_StatusDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dest func() *domain.Destination
		want string
	}{
		{
			name: "unsupported scheme",
			dest: func() *domain.Destination {
				d := domain.NewDestination("mailto:user@a")
				d.UnsupportedScheme = true

				return d
			},
			want: "unsupported scheme",
		},
		{
			name: "skipped external",
			dest: func() *domain.Destination {
				d := domain.NewDestination("http://x.com/")
				d.IsExternal = true

				return d
			},
			want: "skipped external link",
		},
		{
			name: "not checked",
			dest: func() *domain.Destination {
				return domain.NewDestination("http://a/")
			},
			want: "not checked",
		},
		{
			name: "fetch failure",
			dest: func() *domain.Destination {
				d := domain.NewDestination("http://a/")
				d.ApplyOutcome(domain.Outcome{Broken: true, Err: "connection refused"})

				return d
			},
			want: "failed: connection refused",
		},
		{
			name: "broken status",
			dest: func() *domain.Destination {
				d := domain.NewDestination("http://a/")
				d.ApplyOutcome(domain.Outcome{StatusCode: 404, Broken: true})

				return d
			},
			want: "broken (HTTP 404)",
		},
		{
			name: "live",
			dest: func() *domain.Destination {
				d := domain.NewDestination("http://a/")
				d.ApplyOutcome(domain.Outcome{StatusCode: 200})

				return d
			},
			want: "ok (HTTP 200)",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.dest().StatusDescription(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
