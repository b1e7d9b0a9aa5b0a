package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// CustomNewRelicContextLogFormatter is a logrus.Formatter that will format logs for sending
// to New Relic. This is a custom implementation that includes sending all logrus.Entry.Fields,
// which isn't supported out of the box yet
//
// Based off of: https://github.com/newrelic/go-agent/blob/f1942e10f0819e2c854d5d7289eb0dc1c52a00af/v3/integrations/logcontext-v2/nrlogrus/formatter.go
type CustomNewRelicContextLogFormatter struct {
	app       *newrelic.Application
	formatter logrus.Formatter
}

// NewCustomNewRelicLogFormatter wraps formatter. Without an app, entries are
// formatted as is and nothing is forwarded.
func NewCustomNewRelicLogFormatter(app *newrelic.Application, formatter logrus.Formatter) CustomNewRelicContextLogFormatter {
	return CustomNewRelicContextLogFormatter{
		app:       app,
		formatter: formatter,
	}
}

func (f CustomNewRelicContextLogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if f.app == nil {
		return f.formatter.Format(e)
	}

	message := e.Message
	if len(e.Data) > 0 {
		errorString := "<nil>"
		extraData := make(map[string]interface{})

		for k, v := range e.Data {
			if k == "error" {
				if typed, ok := v.(error); ok {
					errorString = fmt.Sprintf("%q", typed.Error())
				}
			} else {
				extraData[k] = v
			}
		}

		extraDataJSON, err := json.Marshal(extraData)
		if err == nil {
			message = fmt.Sprintf("message=%q, error=%s, data=%s", message, errorString, string(extraDataJSON))
		}
	}

	logData := newrelic.LogData{
		Severity: e.Level.String(),
		Message:  message,
	}

	logBytes, err := f.formatter.Format(e)
	if err != nil {
		return nil, err
	}
	logBytes = bytes.TrimRight(logBytes, "\n")
	b := bytes.NewBuffer(logBytes)

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}

	if txn != nil {
		txn.RecordLog(logData)
		err = newrelic.EnrichLog(b, newrelic.FromTxn(txn))
	} else {
		f.app.RecordLog(logData)
		err = newrelic.EnrichLog(b, newrelic.FromApp(f.app))
	}
	if err != nil {
		return nil, err
	}
	b.WriteString("\n")
	return b.Bytes(), nil
}
