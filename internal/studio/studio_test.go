// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"expostudio/internal/ai"
	"expostudio/internal/apperr"
	"expostudio/internal/site"
)

// fakeBackend is a scripted ai.Backend that counts every call.
type fakeBackend struct {
	mu sync.Mutex

	jsonFn  func(req ai.JSONRequest) (string, error)
	image   *ai.Image
	imgErr  error
	ops     []*ai.VideoOperation // returned by StartVideo then VideoStatus, in order
	opErr   error
	video   string
	dlErr   error
	prompts []string

	jsonCalls, imageCalls, startCalls, statusCalls, downloadCalls int
}

func (f *fakeBackend) GenerateJSON(_ context.Context, req ai.JSONRequest) (string, error) {
	f.mu.Lock()
	f.jsonCalls++
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()
	return f.jsonFn(req)
}

func (f *fakeBackend) GenerateImage(_ context.Context, prompt string) (*ai.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	f.prompts = append(f.prompts, prompt)
	if f.imgErr != nil {
		return nil, f.imgErr
	}
	return f.image, nil
}

func (f *fakeBackend) nextOp() (*ai.VideoOperation, error) {
	if f.opErr != nil {
		return nil, f.opErr
	}
	op := f.ops[0]
	if len(f.ops) > 1 {
		f.ops = f.ops[1:]
	}
	return op, nil
}

func (f *fakeBackend) StartVideo(context.Context, ai.VideoRequest) (*ai.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	return f.nextOp()
}

func (f *fakeBackend) VideoStatus(context.Context, string) (*ai.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.nextOp()
}

func (f *fakeBackend) DownloadVideo(context.Context, string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls++
	if f.dlErr != nil {
		return nil, f.dlErr
	}
	return io.NopCloser(strings.NewReader(f.video)), nil
}

const conceptJSON = `{
  "name": "Desert Bloom",
  "description": "An open stand with a central hospitality bar.",
  "materials": ["oak", "brushed brass"],
  "lighting": "Warm cove lighting",
  "technology": ["LED wall"],
  "colorPalette": ["#C9A227", "gold", "#1a2b3c", "#12345"]
}`

func jsonReply(s string) func(ai.JSONRequest) (string, error) {
	return func(ai.JSONRequest) (string, error) { return s, nil }
}

func testCatalogue(t *testing.T) *site.Catalogue {
	t.Helper()
	cat, err := site.Load()
	if err != nil {
		t.Fatalf("site.Load: %v", err)
	}
	return cat
}

func validExhibition() *ExhibitionBrief {
	return &ExhibitionBrief{CompanyName: "Acme", BoothSize: "6x9m", Style: "minimal"}
}

func TestDesign_Success(t *testing.T) {
	fb := &fakeBackend{
		jsonFn: jsonReply(conceptJSON),
		image:  &ai.Image{Data: []byte("png-bytes"), MimeType: "image/png"},
	}
	svc := New(fb, Options{})

	res, err := svc.Design(context.Background(), validExhibition())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if res.DesignConcept.Name != "Desert Bloom" {
		t.Errorf("name = %q", res.DesignConcept.Name)
	}
	want := []string{"#C9A227", "#1a2b3c"}
	if strings.Join(res.DesignConcept.ColorPalette, ",") != strings.Join(want, ",") {
		t.Errorf("palette = %v, want %v", res.DesignConcept.ColorPalette, want)
	}
	if res.Image != base64.StdEncoding.EncodeToString([]byte("png-bytes")) {
		t.Errorf("image = %q", res.Image)
	}
	if strings.HasPrefix(res.Image, "data:") {
		t.Error("image must not carry a data: prefix")
	}
	if res.MimeType != "image/png" {
		t.Errorf("mimeType = %q", res.MimeType)
	}
	if fb.jsonCalls != 1 || fb.imageCalls != 1 {
		t.Errorf("calls = %d json, %d image; want 1, 1", fb.jsonCalls, fb.imageCalls)
	}
	// The render prompt embeds the concept verbatim.
	if imgPrompt := fb.prompts[1]; !strings.Contains(imgPrompt, "Desert Bloom") || !strings.Contains(imgPrompt, "brushed brass") {
		t.Errorf("image prompt missing concept fields: %q", imgPrompt)
	}
}

func TestDesign_MissingFieldMakesNoCalls(t *testing.T) {
	tests := []struct {
		name  string
		brief Brief
		field string
	}{
		{"exhibition company", &ExhibitionBrief{BoothSize: "3x3", Style: "bold"}, "companyName"},
		{"exhibition size", &ExhibitionBrief{CompanyName: "Acme", Style: "bold"}, "boothSize"},
		{"event guests", &EventBrief{EventType: "gala", Venue: "Atlantis", Theme: "gold"}, "guestCount"},
		{"event theme", &EventBrief{EventType: "gala", GuestCount: 200, Venue: "Atlantis"}, "theme"},
		{"interior area", &InteriorBrief{SpaceType: "office", Style: "modern"}, "area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{jsonFn: jsonReply(conceptJSON)}
			_, err := New(fb, Options{}).Design(context.Background(), tt.brief)

			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("err = %v, want validation", err)
			}
			if !strings.Contains(apperr.Message(err), tt.field) {
				t.Errorf("message %q does not name %s", apperr.Message(err), tt.field)
			}
			if fb.jsonCalls+fb.imageCalls != 0 {
				t.Errorf("backend called %d times", fb.jsonCalls+fb.imageCalls)
			}
		})
	}
}

func TestDesign_NoBackend(t *testing.T) {
	_, err := New(nil, Options{}).Design(context.Background(), validExhibition())
	if !apperr.Is(err, apperr.Configuration) {
		t.Fatalf("err = %v, want configuration", err)
	}
	if !strings.Contains(apperr.Message(err), "GEMINI_API_KEY") {
		t.Errorf("message = %q", apperr.Message(err))
	}
}

func TestDesign_ValidationBeforeConfiguration(t *testing.T) {
	_, err := New(nil, Options{}).Design(context.Background(), &InteriorBrief{})
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestDesign_TextFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ai.JSONRequest) (string, error)
		kind apperr.Kind
	}{
		{"not json", jsonReply("Here is your concept!"), apperr.UpstreamFormat},
		{"missing keys", jsonReply(`{"name":"x"}`), apperr.SchemaViolation},
		{"wrong type", jsonReply(`{"name":"x","description":"d","materials":"oak","lighting":"l","technology":[],"colorPalette":[]}`), apperr.SchemaViolation},
		{"upstream error", func(ai.JSONRequest) (string, error) { return "", errors.New("503") }, apperr.Upstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{jsonFn: tt.fn, image: &ai.Image{Data: []byte("x"), MimeType: "image/png"}}
			_, err := New(fb, Options{}).Design(context.Background(), validExhibition())

			if !apperr.Is(err, tt.kind) {
				t.Fatalf("err = %v (kind %v), want %v", err, apperr.KindOf(err), tt.kind)
			}
			if fb.imageCalls != 0 {
				t.Error("image step must not run after a text failure")
			}
		})
	}
}

func TestDesign_FencedJSONAccepted(t *testing.T) {
	fb := &fakeBackend{
		jsonFn: jsonReply("```json\n" + conceptJSON + "\n```"),
		image:  &ai.Image{Data: []byte("x"), MimeType: "image/png"},
	}
	if _, err := New(fb, Options{}).Design(context.Background(), validExhibition()); err != nil {
		t.Fatalf("Design: %v", err)
	}
}

func TestDesign_ImageFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"no image", ai.ErrNoImage, apperr.Generation},
		{"upstream", errors.New("quota"), apperr.Upstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{jsonFn: jsonReply(conceptJSON), imgErr: tt.err}
			_, err := New(fb, Options{}).Design(context.Background(), validExhibition())
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("err = %v, want %v", err, tt.kind)
			}
		})
	}
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	fail bool
}

func (a *fakeArchive) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return "", errors.New("bucket unavailable")
	}
	a.keys = append(a.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDesign_Archive(t *testing.T) {
	archive := &fakeArchive{}
	fb := &fakeBackend{
		jsonFn: jsonReply(conceptJSON),
		image:  &ai.Image{Data: tinyPNG(t), MimeType: "image/png"},
	}
	res, err := New(fb, Options{Archive: archive}).Design(context.Background(), validExhibition())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if len(archive.keys) != 2 {
		t.Fatalf("archived %v, want image and thumbnail", archive.keys)
	}
	if !strings.HasPrefix(archive.keys[0], "designs/exhibition/") || !strings.HasSuffix(archive.keys[0], ".png") {
		t.Errorf("image key = %q", archive.keys[0])
	}
	if !strings.Contains(archive.keys[0], "desert-bloom-") {
		t.Errorf("image key %q lacks concept slug", archive.keys[0])
	}
	if !strings.HasSuffix(archive.keys[1], "-thumb.jpg") {
		t.Errorf("thumbnail key = %q", archive.keys[1])
	}
	if res.ImageURL == "" || res.ThumbnailURL == "" {
		t.Errorf("urls = %q, %q", res.ImageURL, res.ThumbnailURL)
	}
}

func TestDesign_ArchiveFailureIgnored(t *testing.T) {
	fb := &fakeBackend{
		jsonFn: jsonReply(conceptJSON),
		image:  &ai.Image{Data: tinyPNG(t), MimeType: "image/png"},
	}
	res, err := New(fb, Options{Archive: &fakeArchive{fail: true}}).Design(context.Background(), validExhibition())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if res.ImageURL != "" || res.Image == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestPalette(t *testing.T) {
	fb := &fakeBackend{jsonFn: jsonReply(`{"colors":["#FFF","red","#00ff00","#12","#abcdef"]}`)}
	res, err := New(fb, Options{}).Palette(context.Background(), PaletteBrief{CompanyName: "Acme", Industry: "energy"})
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if got := strings.Join(res.Colors, ","); got != "#FFF,#00ff00,#abcdef" {
		t.Errorf("colors = %s", got)
	}
	if !strings.Contains(fb.prompts[0], "5-colour") {
		t.Errorf("default count not applied: %q", fb.prompts[0])
	}
}

func TestPalette_Logo(t *testing.T) {
	var got ai.JSONRequest
	fb := &fakeBackend{jsonFn: func(req ai.JSONRequest) (string, error) {
		got = req
		return `{"colors":["#000000"]}`, nil
	}}
	logo := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG(t))

	if _, err := New(fb, Options{}).Palette(context.Background(), PaletteBrief{Logo: logo, Count: 3}); err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if len(got.Images) != 1 || got.Images[0].MimeType != "image/png" {
		t.Fatalf("images = %+v", got.Images)
	}
	if !strings.Contains(got.Prompt, "3 most prominent") {
		t.Errorf("prompt = %q", got.Prompt)
	}
}

func TestPalette_Validation(t *testing.T) {
	tests := []struct {
		name  string
		brief PaletteBrief
	}{
		{"empty", PaletteBrief{}},
		{"bad base64", PaletteBrief{Logo: "%%%"}},
		{"not an image", PaletteBrief{Logo: base64.StdEncoding.EncodeToString([]byte("plain text"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{jsonFn: jsonReply(`{"colors":[]}`)}
			_, err := New(fb, Options{}).Palette(context.Background(), tt.brief)
			if !apperr.Is(err, apperr.Validation) {
				t.Fatalf("err = %v, want validation", err)
			}
			if fb.jsonCalls != 0 {
				t.Error("backend must not be called")
			}
		})
	}
}

func TestMatchStyle(t *testing.T) {
	var got ai.JSONRequest
	fb := &fakeBackend{jsonFn: func(req ai.JSONRequest) (string, error) {
		got = req
		return `{"style":"Modern","reason":"Clean lines suit a tech brand."}`, nil
	}}
	brief := StyleBrief{Description: "sleek tech stand", Styles: []string{"Modern", " Classic ", "Modern", ""}}

	res, err := New(fb, Options{}).MatchStyle(context.Background(), brief)
	if err != nil {
		t.Fatalf("MatchStyle: %v", err)
	}
	if res.Style != "Modern" {
		t.Errorf("style = %q", res.Style)
	}
	enum := got.Schema.Properties["style"].Enum
	if strings.Join(enum, "|") != "Modern|Classic" {
		t.Errorf("enum = %v", enum)
	}
}

func TestMatchStyle_OutsideEnum(t *testing.T) {
	fb := &fakeBackend{jsonFn: jsonReply(`{"style":"Brutalist","reason":"x"}`)}
	_, err := New(fb, Options{}).MatchStyle(context.Background(), StyleBrief{Description: "d", Styles: []string{"Modern"}})
	if !apperr.Is(err, apperr.SchemaViolation) {
		t.Fatalf("err = %v, want schema violation", err)
	}
}

func TestMatchStyle_Validation(t *testing.T) {
	svc := New(&fakeBackend{}, Options{})
	for _, brief := range []StyleBrief{
		{Styles: []string{"Modern"}},
		{Description: "d", Styles: []string{" ", ""}},
	} {
		if _, err := svc.MatchStyle(context.Background(), brief); !apperr.Is(err, apperr.Validation) {
			t.Errorf("MatchStyle(%+v) err = %v, want validation", brief, err)
		}
	}
}

const seoJSON = `{"title":"T","description":"D","keywords":["a","b"]}`

func TestSEO_AllPages(t *testing.T) {
	cat := testCatalogue(t)
	fb := &fakeBackend{jsonFn: jsonReply(seoJSON)}

	metas, err := New(fb, Options{Catalogue: cat}).SEO(context.Background(), nil)
	if err != nil {
		t.Fatalf("SEO: %v", err)
	}
	pages := cat.Pages()
	if len(metas) != len(pages) {
		t.Fatalf("got %d metas, want %d", len(metas), len(pages))
	}
	for i, m := range metas {
		if m.Path != pages[i].Path {
			t.Errorf("metas[%d].Path = %q, want %q (order must follow input)", i, m.Path, pages[i].Path)
		}
	}
	if fb.jsonCalls != len(pages) {
		t.Errorf("calls = %d", fb.jsonCalls)
	}
}

func TestSEO_OneFailureFailsBatch(t *testing.T) {
	fb := &fakeBackend{jsonFn: func(req ai.JSONRequest) (string, error) {
		if strings.Contains(req.Prompt, `"/events"`) {
			return "", errors.New("boom")
		}
		return seoJSON, nil
	}}

	metas, err := New(fb, Options{Catalogue: testCatalogue(t)}).SEO(context.Background(), []string{"/", "/events", "/about"})
	if err == nil {
		t.Fatal("expected error")
	}
	if metas != nil {
		t.Errorf("partial results returned: %v", metas)
	}
}

func TestSEO_UnknownPath(t *testing.T) {
	fb := &fakeBackend{jsonFn: jsonReply(seoJSON)}
	_, err := New(fb, Options{Catalogue: testCatalogue(t)}).SEO(context.Background(), []string{"/nope"})
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if fb.jsonCalls != 0 {
		t.Error("backend must not be called")
	}
}

func doneOp(uri string) *ai.VideoOperation {
	return &ai.VideoOperation{Name: "operations/v1", Done: true, VideoURI: uri}
}

func pendingOp() *ai.VideoOperation {
	return &ai.VideoOperation{Name: "operations/v1"}
}

func fastVideo(fb *fakeBackend, polls int) *Service {
	return New(fb, Options{VideoPollInterval: time.Millisecond, VideoMaxPolls: polls})
}

func TestVideo_PollsUntilDone(t *testing.T) {
	fb := &fakeBackend{
		ops:   []*ai.VideoOperation{pendingOp(), pendingOp(), pendingOp(), doneOp("https://files/v.mp4")},
		video: "mp4-bytes",
	}

	stream, err := fastVideo(fb, 10).Video(context.Background(), VideoBrief{Prompt: "dunes at dawn"})
	if err != nil {
		t.Fatalf("Video: %v", err)
	}
	defer stream.Close()

	body, _ := io.ReadAll(stream)
	if string(body) != "mp4-bytes" {
		t.Errorf("body = %q", body)
	}
	if stream.ContentType != "video/mp4" {
		t.Errorf("content type = %q", stream.ContentType)
	}
	if fb.startCalls != 1 || fb.statusCalls != 3 || fb.downloadCalls != 1 {
		t.Errorf("calls start=%d status=%d download=%d", fb.startCalls, fb.statusCalls, fb.downloadCalls)
	}
}

func TestVideo_PollLimit(t *testing.T) {
	fb := &fakeBackend{ops: []*ai.VideoOperation{pendingOp()}}

	_, err := fastVideo(fb, 3).Video(context.Background(), VideoBrief{Prompt: "p"})
	if !apperr.Is(err, apperr.Generation) {
		t.Fatalf("err = %v, want generation", err)
	}
	if fb.statusCalls != 3 {
		t.Errorf("status calls = %d, want 3", fb.statusCalls)
	}
	if fb.downloadCalls != 0 {
		t.Error("download must not run")
	}
}

func TestVideo_ContextCancelStopsPolling(t *testing.T) {
	fb := &fakeBackend{ops: []*ai.VideoOperation{pendingOp()}}
	svc := New(fb, Options{VideoPollInterval: time.Hour, VideoMaxPolls: 60})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Video(ctx, VideoBrief{Prompt: "p"})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !apperr.Is(err, apperr.Generation) || !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want cancelled generation error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Video did not return after cancel")
	}
}

func TestVideo_Failures(t *testing.T) {
	tests := []struct {
		name string
		fb   *fakeBackend
	}{
		{"start fails", &fakeBackend{opErr: errors.New("quota")}},
		{"operation error", &fakeBackend{ops: []*ai.VideoOperation{{Name: "op", Done: true, Error: "safety filter"}}}},
		{"done without uri", &fakeBackend{ops: []*ai.VideoOperation{doneOp("")}}},
		{"download fails", &fakeBackend{ops: []*ai.VideoOperation{doneOp("u")}, dlErr: errors.New("403")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fastVideo(tt.fb, 5).Video(context.Background(), VideoBrief{Prompt: "p"})
			if !apperr.Is(err, apperr.Generation) {
				t.Fatalf("err = %v, want generation", err)
			}
			if apperr.Message(err) != "Video generation failed." {
				t.Errorf("message = %q", apperr.Message(err))
			}
		})
	}
}

func TestVideo_Theme(t *testing.T) {
	cat := testCatalogue(t)
	svc := New(&fakeBackend{ops: []*ai.VideoOperation{doneOp("u")}}, Options{Catalogue: cat})

	prompt, err := svc.videoPrompt(VideoBrief{Theme: "Gala dinner"})
	if err != nil {
		t.Fatalf("videoPrompt: %v", err)
	}
	event, _ := cat.HeroVideo("event")
	if prompt != event.Prompt {
		t.Errorf("prompt = %q, want event hero prompt", prompt)
	}

	if _, err := svc.videoPrompt(VideoBrief{Theme: "underwater"}); !apperr.Is(err, apperr.Validation) {
		t.Errorf("unknown theme err = %v, want validation", err)
	}
	if _, err := svc.videoPrompt(VideoBrief{}); !apperr.Is(err, apperr.Validation) {
		t.Errorf("empty brief err = %v, want validation", err)
	}
}

func TestVideo_NoBackend(t *testing.T) {
	_, err := New(nil, Options{}).Video(context.Background(), VideoBrief{Prompt: "p"})
	if !apperr.Is(err, apperr.Configuration) {
		t.Fatalf("err = %v, want configuration", err)
	}
}

func TestValidation_TooLong(t *testing.T) {
	long := strings.Repeat("x", maxTextLen+1)
	fb := &fakeBackend{jsonFn: jsonReply(conceptJSON)}
	svc := New(fb, Options{})
	ctx := context.Background()

	_, designErr := svc.Design(ctx, &ExhibitionBrief{CompanyName: "Acme", BoothSize: "3x3", Style: long})
	_, styleErr := svc.MatchStyle(ctx, StyleBrief{Description: long, Styles: []string{"Modern"}})
	_, videoErr := svc.Video(ctx, VideoBrief{Prompt: long})

	for name, err := range map[string]error{"design": designErr, "style": styleErr, "video": videoErr} {
		if !apperr.Is(err, apperr.Validation) || !strings.Contains(apperr.Message(err), "too long") {
			t.Errorf("%s: err = %v, want too long validation", name, err)
		}
	}
	if fb.jsonCalls != 0 || fb.startCalls != 0 {
		t.Error("backend must not be called")
	}
}
