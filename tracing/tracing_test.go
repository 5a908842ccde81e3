/*
   Copyright 2026 The effect-orpc Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	for _, exporter := range []string{"", "disabled"} {
		shutdown, err := Init(context.Background(), Config{Exporter: exporter})
		if err != nil {
			t.Fatalf("Init(%q) error: %v", exporter, err)
		}
		if shutdown == nil {
			t.Fatalf("Init(%q) must return a shutdown func", exporter)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("noop shutdown error: %v", err)
		}
	}
}

func TestInit_StdoutExporter(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{
		Exporter:    "stdout",
		ServiceName: "test-svc",
		SampleRatio: 0.5,
		ResourceTags: map[string]string{
			"deployment": "test",
		},
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	tr := Tracer("test")
	_, span := tr.Start(context.Background(), "op")
	span.End()
}

func TestCaptureStackTrace(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	CaptureStackTrace(span)
	span.End()

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "code.stacktrace" && attr.Value.AsString() != "" {
			return
		}
	}
	t.Fatal("code.stacktrace attribute missing")
}
