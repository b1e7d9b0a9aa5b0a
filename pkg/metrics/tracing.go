package metrics

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// MethodTracer is a segment for a single method call within the transaction
// carried by a context. A nil tracer, returned when there's no transaction,
// is safe to use.
type MethodTracer struct {
	txn *newrelic.Transaction
	seg *newrelic.Segment
}

// TraceMethodCall starts a segment named "<structOrPackageName> <methodName>".
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &MethodTracer{
		txn: txn,
		seg: txn.StartSegment(fmt.Sprintf("%s %s", structOrPackageName, methodName)),
	}
}

func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}
	t.seg.AddAttribute(key, value)
}

func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	for key, value := range attributes {
		t.AddAttribute(key, value)
	}
}

// OnError reports err on the transaction. The error class is the type of the
// root cause rather than the wrapper added by github.com/pkg/errors.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.txn.NoticeError(newrelic.Error{
		Message: err.Error(),
		Class:   fmt.Sprintf("%T", errors.Cause(err)),
	})
}

func (t *MethodTracer) End() {
	if t == nil {
		return
	}
	t.seg.End()
}
