package publish

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/publish/builder/config"
	"github.com/Kush-Singh-26/publish/builder/parser"
	"github.com/Kush-Singh-26/publish/builder/services"
	"github.com/Kush-Singh-26/publish/builder/testutil"
)

func testEnv(fs afero.Fs, cwd string) (Env, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return Env{
		Fs:     fs,
		Cwd:    cwd,
		Config: config.Default(),
		Logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		Out:    out,
		Now:    func() time.Time { return testutil.FixedNow },
	}, out
}

// siteFs is a blog root with both default directories present
func siteFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := testutil.CreateTestFilesystemWithContent(files)
	for _, dir := range []string{"writing_posts", "_posts"} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return fs
}

func TestRun_NewPost(t *testing.T) {
	content := testutil.PostContent("Hello World")
	fs := siteFs(t, map[string]string{"writing_posts/draft.md": content})
	env, out := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileContent(t, fs, "_posts/2026-10-15-Hello World.md", []byte(content))
	testutil.AssertFileExists(t, fs, "writing_posts/draft.md")

	want := "title: Hello World.md\ncopy writing_posts/draft.md -> _posts/2026-10-15-Hello World.md done.\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_ReusesExistingDate(t *testing.T) {
	content := testutil.PostContent("Hello World")
	fs := siteFs(t, map[string]string{
		"writing_posts/draft.md":           content,
		"_posts/2023-01-01-Hello World.md": "published long ago",
	})
	env, _ := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileContent(t, fs, "_posts/2023-01-01-Hello World.md", []byte(content))
	testutil.AssertFileNotExists(t, fs, "_posts/2026-10-15-Hello World.md")
}

func TestRun_RepeatedRunsKeepName(t *testing.T) {
	fs := siteFs(t, map[string]string{"writing_posts/draft.md": testutil.PostContent("Hello World")})
	env, _ := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	env.Now = func() time.Time { return testutil.FixedNow.AddDate(0, 1, 0) }
	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	posts, err := afero.ReadDir(fs, "_posts")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Name() != "2026-10-15-Hello World.md" {
		t.Errorf("_posts contains %v, want only 2026-10-15-Hello World.md", posts)
	}
}

func TestRun_RemoveSource(t *testing.T) {
	fs := siteFs(t, map[string]string{"writing_posts/draft.md": testutil.PostContent("Hello World")})
	env, out := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{Remove: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileNotExists(t, fs, "writing_posts/draft.md")
	testutil.AssertFileExists(t, fs, "_posts/2026-10-15-Hello World.md")
	if !strings.HasSuffix(out.String(), "remove writing_posts/draft.md done.\n") {
		t.Errorf("output = %q, want removal confirmation", out.String())
	}
}

func TestRun_NoFrontmatterUsesFileName(t *testing.T) {
	fs := siteFs(t, map[string]string{"writing_posts/plain-note.md": "# Plain\n"})
	env, out := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileExists(t, fs, "_posts/2026-10-15-plain-note.md")
	if !strings.HasPrefix(out.String(), "Header not found\n") {
		t.Errorf("output = %q, want header warning first", out.String())
	}
}

func TestRun_NewestDraftIsSelected(t *testing.T) {
	fs := siteFs(t, nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.WriteFileWithModTime(t, fs, "writing_posts/older.md", testutil.PostContent("Older"), base)
	testutil.WriteFileWithModTime(t, fs, "writing_posts/newer.md", testutil.PostContent("Newer"), base.Add(time.Minute))
	env, _ := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileExists(t, fs, "_posts/2026-10-15-Newer.md")
	testutil.AssertFileNotExists(t, fs, "_posts/2026-10-15-Older.md")
}

func TestRun_ExplicitNames(t *testing.T) {
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"in/a.md":   testutil.PostContent("Ignored Title"),
		"in/b.md":   "b",
		"out/.keep": "",
	})
	env, _ := testEnv(fs, "/anywhere")

	opts := Options{From: "in", To: "out", SourceFile: "b.md", DestFile: "custom.md"}
	if err := Run(context.Background(), env, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	testutil.AssertFileContent(t, fs, "out/custom.md", []byte("b"))
}

func TestRun_DryRun(t *testing.T) {
	fs := siteFs(t, map[string]string{"writing_posts/draft.md": testutil.PostContent("Hello World")})
	env, out := testEnv(fs, "/home/me/blog")

	if err := Run(context.Background(), env, Options{DryRun: true, Remove: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.AssertFileNotExists(t, fs, "_posts/2026-10-15-Hello World.md")
	testutil.AssertFileExists(t, fs, "writing_posts/draft.md")
	for _, want := range []string{"Dry run", "_posts/2026-10-15-Hello World.md", "remove: writing_posts/draft.md"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output = %q, missing %q", out.String(), want)
		}
	}
}

func TestRun_Aborts(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		dirs    []string
		opts    Options
		wantErr error
	}{
		{
			name:    "source directory missing",
			dirs:    []string{"_posts"},
			wantErr: ErrDirMissing,
		},
		{
			name:    "destination directory missing",
			dirs:    []string{"writing_posts"},
			wantErr: ErrDirMissing,
		},
		{
			name:    "no drafts",
			dirs:    []string{"writing_posts", "_posts"},
			wantErr: services.ErrNoMarkdownFiles,
		},
		{
			name:    "explicit source missing",
			dirs:    []string{"writing_posts", "_posts"},
			opts:    Options{SourceFile: "ghost.md"},
			wantErr: services.ErrSourceMissing,
		},
		{
			name:    "frontmatter without title",
			files:   map[string]string{"writing_posts/draft.md": "---\ndate: 2026-01-01\n---\n"},
			dirs:    []string{"_posts"},
			wantErr: parser.ErrTitleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.CreateTestFilesystemWithContent(tt.files)
			for _, dir := range tt.dirs {
				if err := fs.MkdirAll(dir, 0755); err != nil {
					t.Fatal(err)
				}
			}
			env, _ := testEnv(fs, "/home/me/blog")

			err := Run(context.Background(), env, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if code := ExitCode(err); code != ExitAbort {
				t.Errorf("ExitCode() = %d, want %d", code, ExitAbort)
			}
		})
	}
}

func TestRun_WriteFailureIsFault(t *testing.T) {
	fs := siteFs(t, map[string]string{"writing_posts/draft.md": testutil.PostContent("Hello World")})
	env, out := testEnv(afero.NewReadOnlyFs(fs), "/home/me/blog")

	err := Run(context.Background(), env, Options{Remove: true})
	if err == nil {
		t.Fatal("Run() should fail on a read-only filesystem")
	}
	if code := ExitCode(err); code != ExitFault {
		t.Errorf("ExitCode() = %d, want %d", code, ExitFault)
	}
	if !strings.HasSuffix(out.String(), "failed.\n") {
		t.Errorf("output = %q, want copy failure", out.String())
	}
	testutil.AssertFileExists(t, fs, "writing_posts/draft.md")
}

// changeToDir changes into dir and returns a cleanup function
func changeToDir(t *testing.T, dir string) func() {
	t.Helper()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	return func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to restore original directory: %v", err)
		}
	}
}

func TestRun_OsFsFromDraftsDir(t *testing.T) {
	root := t.TempDir()
	drafts := filepath.Join(root, "writing_posts")
	posts := filepath.Join(root, "_posts")
	for _, dir := range []string{drafts, posts} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	content := testutil.PostContent("Hello World")
	if err := os.WriteFile(filepath.Join(drafts, "draft.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cleanup := changeToDir(t, drafts)
	defer cleanup()

	env, _ := testEnv(afero.NewOsFs(), drafts)
	if err := Run(context.Background(), env, Options{Remove: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(posts, "2026-10-15-Hello World.md"))
	if err != nil {
		t.Fatalf("published post missing: %v", err)
	}
	if string(got) != content {
		t.Errorf("published content = %q, want %q", got, content)
	}
	if _, err := os.Stat(filepath.Join(drafts, "draft.md")); !os.IsNotExist(err) {
		t.Errorf("draft should be removed, stat error = %v", err)
	}
}

func TestRun_CopyOntoItselfKeepsDraft(t *testing.T) {
	root := t.TempDir()
	drafts := filepath.Join(root, "writing_posts")
	if err := os.MkdirAll(drafts, 0755); err != nil {
		t.Fatal(err)
	}
	content := testutil.PostContent("Hello World")
	if err := os.WriteFile(filepath.Join(drafts, "draft.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cleanup := changeToDir(t, drafts)
	defer cleanup()

	env, _ := testEnv(afero.NewOsFs(), drafts)
	err := Run(context.Background(), env, Options{To: "../writing_posts", SourceFile: "draft.md", DestFile: "draft.md"})
	if !errors.Is(err, services.ErrSameFile) {
		t.Fatalf("Run() error = %v, want ErrSameFile", err)
	}
	if code := ExitCode(err); code != ExitAbort {
		t.Errorf("ExitCode() = %d, want %d", code, ExitAbort)
	}

	got, err := os.ReadFile(filepath.Join(drafts, "draft.md"))
	if err != nil {
		t.Fatalf("draft missing: %v", err)
	}
	if string(got) != content {
		t.Errorf("draft content = %q, want %q", got, content)
	}
}
