package render

import (
	"context"
	"errors"
	"testing"
)

func TestConvertMissingTool(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "rsvg-convert-does-not-exist"
	defer func() { rsvgConvert = old }()

	if _, err := ToPDF(context.Background(), []byte("<svg/>")); !errors.Is(err, ErrNoConverter) {
		t.Errorf("ToPDF error = %v, want ErrNoConverter", err)
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !errors.Is(err, ErrNoConverter) {
		t.Errorf("ToPNG error = %v, want ErrNoConverter", err)
	}
}
