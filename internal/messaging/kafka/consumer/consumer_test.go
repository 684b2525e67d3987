package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type scriptedReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *scriptedReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeDocuments struct {
	periods  []string
	payslips []string
	err      error
}

func (f *fakeDocuments) RenderPeriod(ctx context.Context, companyID, period string) (int, error) {
	f.periods = append(f.periods, period)
	return 2, f.err
}

func (f *fakeDocuments) RenderPayslip(ctx context.Context, companyID, payslipID string) (string, error) {
	f.payslips = append(f.payslips, payslipID)
	return "/tmp/" + payslipID + ".pdf", f.err
}

func (f *fakeDocuments) Open(ctx context.Context, companyID, payslipID string) (payroll.Document, error) {
	return payroll.Document{}, nil
}

func message(t *testing.T, offset int64, v any) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func TestConsumeCycleTransitioned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, msgs: []kafkago.Message{
		message(t, 1, events.PayrollCycleTransitionedEvent{CompanyID: "c1", Period: "2024-03", FromState: "CALCULATED", ToState: "FINALIZED"}),
		message(t, 2, events.PayrollCycleTransitionedEvent{CompanyID: "c1", Period: "2024-03", FromState: "FINALIZED", ToState: "PAID"}),
		{Offset: 3, Value: []byte("{not json")},
	}}
	docs := &fakeDocuments{}

	ConsumeCycleTransitioned(ctx, reader, docs, zap.NewNop())

	assert.Equal(t, []string{"2024-03"}, docs.periods)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumePayslipRequestedLeavesFailuresUncommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, msgs: []kafkago.Message{
		message(t, 7, events.PayrollPayslipRequestedEvent{CompanyID: "c1", PayslipID: "p1"}),
	}}
	docs := &fakeDocuments{err: errors.New("disk full")}

	ConsumePayslipRequested(ctx, reader, docs, zap.NewNop())

	assert.Equal(t, []string{"p1"}, docs.payslips)
	assert.Empty(t, reader.committed)
}
