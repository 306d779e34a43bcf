// Package taskgateway is the HTTP client for the task board API. Every
// failure, transport or non-2xx, comes back as an *Error.
package taskgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
)

// Session is what login and register return.
type Session struct {
	User  usersrepo.User `json:"user"`
	Token string         `json:"token"`
}

// Client talks to the task board API.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token sent with task calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) FetchTasks(ctx context.Context) ([]tasksrepo.Task, error) {
	var out []tasksrepo.Task
	if err := c.do(ctx, "fetch-tasks", MsgFetchTasks, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []tasksrepo.Task{}
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	var out tasksrepo.Task
	if err := c.do(ctx, "create-task", MsgCreateTask, http.MethodPost, "/tasks", input, &out); err != nil {
		return tasksrepo.Task{}, err
	}
	return out, nil
}

// UpdateTask sends only the fields set in input.
func (c *Client) UpdateTask(ctx context.Context, id string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	var out tasksrepo.Task
	path := "/tasks/" + url.PathEscape(id)
	if err := c.do(ctx, "update-task", MsgUpdateTask, http.MethodPatch, path, input, &out); err != nil {
		return tasksrepo.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var out struct {
		Success bool `json:"success"`
	}
	path := "/tasks/" + url.PathEscape(id)
	return c.do(ctx, "delete-task", MsgDeleteTask, http.MethodDelete, path, nil, &out)
}

// Login exchanges credentials for a session and keeps its token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	in := usersrepo.Credentials{Email: email, Password: password}
	return c.session(ctx, "login", MsgLogin, "/login", in)
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	in := usersrepo.RegisterUser{Name: name, Email: email, Password: password}
	return c.session(ctx, "register", MsgRegister, "/register", in)
}

func (c *Client) session(ctx context.Context, op, msg, path string, in any) (Session, error) {
	var out Session
	if err := c.do(ctx, op, msg, http.MethodPost, path, in, &out); err != nil {
		return Session{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) do(ctx context.Context, op, msg, method, path string, in, out any) error {
	fail := func(status int, detail string, err error) error {
		return &Error{Op: op, Message: msg, StatusCode: status, Detail: detail, Err: err}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fail(0, "", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return fail(resp.StatusCode, e.Error, nil)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fail(0, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}
