// Package web serves the compiler as a small playground: a form that renders
// every artifact of a compilation, and a websocket endpoint for live
// recompilation while editing.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"minicc/internal/compile"
)

//go:embed templates/index.html
var templateFS embed.FS

type Server struct {
	cfg      Config
	tmpl     *template.Template
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewServer(cfg Config, logger *log.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		cfg:  cfg,
		tmpl: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

func (s *Server) ListenAndServe() error {
	s.logger.Printf("listening on %s", s.cfg.Address)
	return http.ListenAndServe(s.cfg.Address, s.Handler())
}

type tokenRow struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Line  int    `json:"line"`
}

type symbolRow struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

type pageData struct {
	Code        string
	Highlighted template.HTML
	Tokens      []tokenRow
	AST         string
	TAC         []string
	Symbols     []symbolRow
	Errors      []string
	Compiled    bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var data pageData
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxSourceBytes)+4096)
		code := r.FormValue("code")
		if len(code) > s.cfg.MaxSourceBytes {
			http.Error(w, "source too large", http.StatusRequestEntityTooLarge)
			return
		}
		data = s.compilePage(code)
	}

	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Printf("rendering index: %v", err)
	}
}

func (s *Server) compilePage(code string) pageData {
	res := compile.Compile(code)

	highlighted, err := highlightSource(code)
	if err != nil {
		s.logger.Printf("highlighting source: %v", err)
		highlighted = template.HTML("<pre>" + template.HTMLEscapeString(code) + "</pre>")
	}

	return pageData{
		Code:        code,
		Highlighted: highlighted,
		Tokens:      tokenRows(res),
		AST:         res.ASTDump,
		TAC:         res.TACLines,
		Symbols:     symbolRows(res),
		Errors:      res.Errors(),
		Compiled:    true,
	}
}

func tokenRows(res compile.Result) []tokenRow {
	rows := make([]tokenRow, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		rows = append(rows, tokenRow{Kind: tok.Kind.String(), Value: tok.Text, Line: tok.Line})
	}
	return rows
}

func symbolRows(res compile.Result) []symbolRow {
	if res.Symbols == nil {
		return nil
	}
	rows := make([]symbolRow, 0, res.Symbols.Len())
	for _, name := range res.Symbols.Names() {
		entry, _ := res.Symbols.Lookup(name)
		row := symbolRow{Name: name, Type: entry.Type, Kind: entry.Kind.String()}
		switch {
		case entry.Size > 0:
			row.Details = fmt.Sprintf("size %d", entry.Size)
		case len(entry.Params) > 0:
			parts := make([]string, 0, len(entry.Params))
			for _, p := range entry.Params {
				if p.Array {
					parts = append(parts, fmt.Sprintf("%s %s[]", p.Type, p.Name))
				} else {
					parts = append(parts, fmt.Sprintf("%s %s", p.Type, p.Name))
				}
			}
			row.Details = strings.Join(parts, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}

// socketResult is the wire form of one live compilation.
type socketResult struct {
	Tokens  []tokenRow  `json:"tokens"`
	AST     string      `json:"ast"`
	TAC     []string    `json:"tac"`
	Symbols []symbolRow `json:"symbols"`
	Errors  []string    `json:"errors"`
}

// handleSocket compiles each received text message and replies with the JSON
// result, so an editor can recompile on every change without reposting the
// form.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if len(data) > s.cfg.MaxSourceBytes {
			if err := conn.WriteJSON(socketResult{Errors: []string{"source too large"}}); err != nil {
				return
			}
			continue
		}

		res := compile.Compile(string(data))
		reply := socketResult{
			Tokens:  tokenRows(res),
			AST:     res.ASTDump,
			TAC:     res.TACLines,
			Symbols: symbolRows(res),
			Errors:  res.Errors(),
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}
