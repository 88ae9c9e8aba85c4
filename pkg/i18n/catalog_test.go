package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidget/pkg/i18n"
)

func TestCatalog_TranslateInterpolatesNamedArgs(t *testing.T) {
	catalog, err := i18n.NewCatalog()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	catalog.Add("en", map[string]string{
		"row.error": `Row {{ row_index }}, "{{ title }}": {{ msg }}`,
	})

	got, err := catalog.Translate("en", "row.error", map[string]any{
		"row_index": 2,
		"title":     "Bee",
		"msg":       "x < y & z",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := `Row 2, "Bee": x < y & z`
	if got != want {
		t.Fatalf("translate mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestCatalog_MatchAndFallback(t *testing.T) {
	files := fstest.MapFS{
		"en.yaml":   {Data: []byte("greeting:\n  hello: Hello\n  bye: Bye\n")},
		"uk.yml":    {Data: []byte("greeting:\n  hello: Привіт\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	catalog, err := i18n.NewCatalog(i18n.WithFS(files), i18n.WithFallback("en"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"en", "uk"}, catalog.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
	if got := catalog.Match("en-GB"); got != "en" {
		t.Fatalf("expected en-GB to match en, got %q", got)
	}
	if got := catalog.Match("ja"); got != "en" {
		t.Fatalf("expected unknown locale to fall back, got %q", got)
	}

	if got, _ := catalog.Translate("uk", "greeting.hello"); got != "Привіт" {
		t.Fatalf("unexpected uk greeting %q", got)
	}
	if got, _ := catalog.Translate("uk", "greeting.bye"); got != "Bye" {
		t.Fatalf("expected fallback to en, got %q", got)
	}

	_, err = catalog.Translate("uk", "greeting.missing")
	if !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestText_FallsBackToKey(t *testing.T) {
	if got := i18n.Text(nil, "en", "some.key"); got != "some.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}

	failing := i18n.TranslatorFunc(func(string, string, ...any) (string, error) {
		return "", errors.New("boom")
	})
	got := i18n.TextOr(failing, "en", "some.key", func(_ string, key string, _ []any, err error) string {
		return "[" + key + ": " + err.Error() + "]"
	})
	if got != "[some.key: boom]" {
		t.Fatalf("unexpected missing handler output %q", got)
	}
}

func TestDefault_HasWidgetMessages(t *testing.T) {
	catalog := i18n.Default()
	got, err := catalog.Translate("en", "widget.append")
	if err != nil || got != "Add" {
		t.Fatalf("expected built-in message, got %q (%v)", got, err)
	}
	if diff := cmp.Diff([]string{"en", "uk"}, catalog.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}
