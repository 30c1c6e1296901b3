package optimizer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"payopti/internal/domain"
)

const analystTimeout = 15 * time.Second

// AnalystClient is the fallible external narrative surface.
type AnalystClient interface {
	Analyze(ctx context.Context, vc domain.VendorContext, mode string) (domain.VendorInsight, error)
}

// FallbackAnalyst produces deterministic insights without the external
// collaborator: strategic treatment above the VRS threshold, the neutral
// default otherwise.
type FallbackAnalyst struct{}

func (FallbackAnalyst) Analyze(_ context.Context, vc domain.VendorContext, _ string) domain.VendorInsight {
	if vc.Relationship.FinalVRS >= 85 {
		return domain.StrategicInsight()
	}
	return domain.DefaultInsight()
}

// ResilientAnalyst tries the external client under a bounded timeout and
// degrades to the fallback on any failure. It never fails itself, which
// keeps allocation from ever blocking on narrative generation.
type ResilientAnalyst struct {
	client   AnalystClient
	fallback FallbackAnalyst
	log      logrus.FieldLogger
}

func NewResilientAnalyst(client AnalystClient, log logrus.FieldLogger) *ResilientAnalyst {
	return &ResilientAnalyst{client: client, log: log}
}

func (a *ResilientAnalyst) Analyze(ctx context.Context, vc domain.VendorContext, mode string) domain.VendorInsight {
	if a.client != nil {
		ctx, cancel := context.WithTimeout(ctx, analystTimeout)
		defer cancel()
		insight, err := a.client.Analyze(ctx, vc, mode)
		if err == nil {
			return insight
		}
		a.log.WithError(err).WithField("vendor", vc.Vendor.VendorID).Warn("vendor analysis failed, using fallback")
	}
	return a.fallback.Analyze(ctx, vc, mode)
}
