package capture

import (
	"context"
	"testing"
	"time"
)

func TestDynamicCapturer_Capture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if FindChromePath() == "" {
		t.Skip("no Chrome binary available")
	}

	srv := newTestServer(t)
	d, err := NewDynamic(Config{Timeout: 20 * time.Second})
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	defer d.Close()

	frag, err := d.Capture(context.Background(), srv.URL+"/page", Options{Selector: "#card"})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if frag.HTML != `<div id="card" class="p-4"><p>Hi</p></div>` {
		t.Errorf("HTML = %q", frag.HTML)
	}
	if d.Type() != "dynamic" {
		t.Errorf("Type() = %q", d.Type())
	}
}
