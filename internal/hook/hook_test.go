package hook

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/revise/internal/transform"
)

func TestOnRequestRewrite(t *testing.T) {
	r, err := LoadString(`
function on_request(req)
	req.instruction = req.instruction .. " and keep comments"
	return req
end
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer r.Close()

	req := transform.Request{
		Text:        "body",
		Instruction: "shorten",
		Filetype:    "go",
		Path:        "main.go",
	}
	out, err := r.OnRequest(req)
	if err != nil {
		t.Fatalf("OnRequest failed: %v", err)
	}
	if out.Instruction != "shorten and keep comments" {
		t.Errorf("Instruction = %q", out.Instruction)
	}
	if out.Text != "body" || out.Filetype != "go" || out.Path != "main.go" {
		t.Errorf("unrelated fields changed: %+v", out)
	}
}

func TestOnRequestNilReturn(t *testing.T) {
	r, err := LoadString(`
function on_request(req)
	return nil
end
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer r.Close()

	req := transform.Request{Text: "body", Instruction: "fix"}
	out, err := r.OnRequest(req)
	if err != nil {
		t.Fatalf("OnRequest failed: %v", err)
	}
	if out != req {
		t.Errorf("request changed: %+v", out)
	}
}

func TestOnRequestUndefined(t *testing.T) {
	r, err := LoadString(`x = 1`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer r.Close()

	req := transform.Request{Text: "body"}
	out, err := r.OnRequest(req)
	if err != nil {
		t.Fatalf("OnRequest failed: %v", err)
	}
	if out != req {
		t.Errorf("request changed: %+v", out)
	}
}

func TestOnResponseRewrite(t *testing.T) {
	r, err := LoadString(`
function on_response(text)
	return text:gsub("%s+$", "")
end
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer r.Close()

	out, err := r.OnResponse("hello   ")
	if err != nil {
		t.Fatalf("OnResponse failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("OnResponse = %q, want %q", out, "hello")
	}
}

func TestOnResponseError(t *testing.T) {
	r, err := LoadString(`
function on_response(text)
	error("rejected")
end
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer r.Close()

	_, err = r.OnResponse("hello")
	if err == nil {
		t.Fatal("expected error from hook")
	}
	if !strings.Contains(err.Error(), "rejected") {
		t.Errorf("error = %v, want to mention rejected", err)
	}
}

func TestSandboxBlocksLoading(t *testing.T) {
	_, err := LoadString(`dofile("/etc/passwd")`)
	if err == nil {
		t.Fatal("expected dofile to be unavailable")
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := LoadString(`function broken(`)
	if err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestClosedRunner(t *testing.T) {
	r, err := LoadString(`x = 1`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	r.Close()
	r.Close()

	if _, err := r.OnResponse("text"); !errors.Is(err, ErrClosed) {
		t.Errorf("OnResponse after Close = %v, want ErrClosed", err)
	}
}
