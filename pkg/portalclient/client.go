// Package portalclient es el cliente Go de las funciones del panel (/api/functions/*).
// Aplica las reglas de degradación del lado cliente: las estadísticas siempre vuelven
// bien formadas aunque el servidor falle.
package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBody límite de lectura de una respuesta.
const maxBody = 1 << 20

// ErrHasRequests el servicio tiene solicitudes y no se envió el delete.
var ErrHasRequests = errors.New("portalclient: el servicio tiene solicitudes asociadas")

// Error respuesta {success:false} o no 2xx del servidor.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("portalclient: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("portalclient: %d: %s", e.Status, e.Message)
}

// HasRequestsError detalle de ErrHasRequests.
type HasRequestsError struct {
	ServiceID string
	Count     int
}

func (e *HasRequestsError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", ErrHasRequests, e.ServiceID, e.Count)
}

func (e *HasRequestsError) Unwrap() error { return ErrHasRequests }

// Client cliente HTTP del portal.
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
}

// Option configura el cliente.
type Option func(*Client)

// WithToken fija el Bearer Token de la sesión.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithLanguage fija Accept-Language (ar, en).
func WithLanguage(lang string) Option { return func(c *Client) { c.language = lang } }

// WithHTTPClient reemplaza el http.Client por defecto.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// New construye el cliente. baseURL apunta a la raíz del API, p. ej. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// post envía body a la función y devuelve el cuerpo crudo. Un fallo de red o de lectura
// vuelve como error tal cual; el estado HTTP lo interpreta quien llama.
func (c *Client) post(ctx context.Context, function string, body interface{}) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("portalclient: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/functions/"+function, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("portalclient: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("portalclient: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("portalclient: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("portalclient: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// call ejecuta una acción con sobre {success, data|error} y decodifica data en out (si no es nil).
func (c *Client) call(ctx context.Context, function string, body interface{}, out interface{}) error {
	status, raw, err := c.post(ctx, function, body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("portalclient: decodificar respuesta (%d): %w", status, err)
	}
	if status < 200 || status >= 300 || !env.Success {
		return &Error{Status: status, Code: env.Code, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("portalclient: decodificar data: %w", err)
	}
	return nil
}
