package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"uppercase tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("StripMarkdownFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseQuizJSON(t *testing.T) {
	valid := `{"topic":"Algebra","questions":[
		{"question":"2+2?","options":["3","4","5"],"correct_answer":1,"explanation":"basic addition"},
		{"question":"x in x+1=3?","options":["1","2"],"correct_answer":1}
	]}`

	t.Run("valid", func(t *testing.T) {
		quiz, err := ParseQuizJSON(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quiz.Topic != "Algebra" {
			t.Errorf("topic = %q, want Algebra", quiz.Topic)
		}
		if len(quiz.Questions) != 2 {
			t.Fatalf("questions = %d, want 2", len(quiz.Questions))
		}
		if quiz.Questions[0].CorrectAnswer != 1 {
			t.Errorf("correct_answer = %d, want 1", quiz.Questions[0].CorrectAnswer)
		}
	})

	t.Run("fenced", func(t *testing.T) {
		if _, err := ParseQuizJSON("```json\n" + valid + "\n```"); err != nil {
			t.Fatalf("fenced payload should parse: %v", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := ParseQuizJSON("Sure! Here is your quiz:"); err == nil {
			t.Fatal("expected error for prose output")
		}
	})

	t.Run("no questions", func(t *testing.T) {
		if _, err := ParseQuizJSON(`{"topic":"x","questions":[]}`); err == nil {
			t.Fatal("expected error for empty questions")
		}
	})

	t.Run("answer out of range", func(t *testing.T) {
		bad := `{"topic":"x","questions":[{"question":"q","options":["a","b"],"correct_answer":5}]}`
		if _, err := ParseQuizJSON(bad); err == nil {
			t.Fatal("expected error for out-of-range answer")
		}
	})

	t.Run("too few options", func(t *testing.T) {
		bad := `{"topic":"x","questions":[{"question":"q","options":["a"],"correct_answer":0}]}`
		if _, err := ParseQuizJSON(bad); err == nil {
			t.Fatal("expected error for single-option question")
		}
	})
}

func newTestClient(upstream *httptest.Server) *Client {
	return &Client{
		BaseURL: upstream.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestClientChat(t *testing.T) {
	var gotAuth, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello there"}}]}`))
	}))
	defer upstream.Close()

	cl := newTestClient(upstream)
	subject := "Math"
	reply, err := cl.Chat(context.Background(), "hi", "student", &subject)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Hello there" {
		t.Errorf("reply = %q, want Hello there", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestClientUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	cl := newTestClient(upstream)
	if _, err := cl.Chat(context.Background(), "hi", "student", nil); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}

func TestClientGenerateQuizFenced(t *testing.T) {
	quizJSON := `{"topic":"History","questions":[{"question":"Year of X?","options":["1900","1950"],"correct_answer":0}]}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `{"choices":[{"message":{"role":"assistant","content":"` +
			strings.ReplaceAll("```json\\n"+strings.ReplaceAll(quizJSON, `"`, `\"`)+"\\n```", "\n", "") + `"}}]}`
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer upstream.Close()

	cl := newTestClient(upstream)
	quiz, err := cl.GenerateQuiz(context.Background(), "History", "easy", 1)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if quiz.Topic != "History" || len(quiz.Questions) != 1 {
		t.Errorf("unexpected quiz: %+v", quiz)
	}
}

func TestClientNotConfigured(t *testing.T) {
	cl := &Client{HTTP: http.DefaultClient}
	if cl.Enabled() {
		t.Error("empty client reports enabled")
	}
	if _, err := cl.Chat(context.Background(), "hi", "student", nil); err == nil {
		t.Fatal("expected error when not configured")
	}
}
