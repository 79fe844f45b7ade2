package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/yeremiapane/blackfish/services"

var (
	reservationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blackfish",
		Subsystem: "backoffice",
		Name:      "reservation_outcomes_total",
		Help:      "Reservation requests handed to the back office, by backend and outcome.",
	}, []string{"backend", "outcome"})

	backOfficeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blackfish",
		Subsystem: "backoffice",
		Name:      "accept_duration_seconds",
		Help:      "Time spent handing one reservation request to the back office.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend"})
)

// NewReference issues the short code shown to the guest after a request is
// received.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BF-" + strings.ToUpper(id[:8])
}

// SimulatedBackOffice accepts every request without forwarding it anywhere.
type SimulatedBackOffice struct{}

func (SimulatedBackOffice) Accept(ctx context.Context, req models.ReservationRequest) (models.ReservationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return models.ReservationOutcome{}, err
	}
	return models.Accepted(NewReference()), nil
}

// InstrumentedBackOffice wraps a back office with a span, an outcome counter
// and a log line per request.
type InstrumentedBackOffice struct {
	Next    components.BackOffice
	Backend string
}

func Instrument(next components.BackOffice, backend string) *InstrumentedBackOffice {
	return &InstrumentedBackOffice{Next: next, Backend: backend}
}

func (b *InstrumentedBackOffice) Accept(ctx context.Context, req models.ReservationRequest) (models.ReservationOutcome, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "backoffice.accept",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("backoffice.backend", b.Backend),
		attribute.String("reservation.guests", req.Guests),
		attribute.Bool("reservation.large_party", req.IsLargeParty()),
	)

	start := time.Now()
	outcome, err := b.Next.Accept(ctx, req)
	backOfficeLatency.WithLabelValues(b.Backend).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		reservationOutcomes.WithLabelValues(b.Backend, "error").Inc()
		utils.ErrorLogger.WithError(err).WithField("backend", b.Backend).Error("Back office call failed")
	case outcome.Accepted:
		span.SetAttributes(attribute.String("reservation.reference", outcome.Reference))
		reservationOutcomes.WithLabelValues(b.Backend, "accepted").Inc()
		utils.InfoLogger.WithFields(logrus.Fields{
			"backend":   b.Backend,
			"reference": outcome.Reference,
		}).Info("Reservation request accepted")
	default:
		reservationOutcomes.WithLabelValues(b.Backend, "rejected").Inc()
		utils.InfoLogger.WithFields(logrus.Fields{
			"backend": b.Backend,
			"reason":  outcome.Reason,
		}).Info("Reservation request rejected")
	}
	return outcome, err
}
