package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/bokysan/codecs/enc"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// htmlCodec is the name of the HTML entity escaper. It works on text only and is not a part of the registry.
const htmlCodec = "html"

// CodecInfo describes one encoder in the response of the `/codecs` endpoint
type CodecInfo struct {
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Ratio     float64 `json:"ratio,omitempty"`
	Streaming bool    `json:"streaming"`
	Alphabet  bool    `json:"alphabet,omitempty"`
}

type handlers struct {
	maxBodySize int64
	upgrader    websocket.Upgrader
	connections *connections
}

// Codecs lists every encoder known to the service
func Codecs() []CodecInfo {
	list := make([]CodecInfo, 0)
	add := func(e enc.Encoder, alphabet bool) {
		_, streaming := e.(enc.StreamEncoder)
		list = append(list, CodecInfo{
			Name:      e.Name(),
			Code:      string(e.Code()),
			Ratio:     e.Ratio(),
			Streaming: streaming,
			Alphabet:  alphabet,
		})
	}

	for _, e := range enc.Encoders() {
		add(e, false)
	}
	add(&enc.Any64Encoder{}, true)

	return append(list, CodecInfo{Name: "HTML"})
}

// encoderFromRequest builds the encoder from the `codec` path parameter and the `alphabet` and `wrap` query
// parameters. The returned status is the one to report if the encoder could not be created.
func encoderFromRequest(r *http.Request) (enc.Encoder, int, error) {
	query := r.URL.Query()

	wrap := 0
	if w := query.Get("wrap"); w != "" {
		var err error
		if wrap, err = strconv.Atoi(w); err != nil {
			return nil, http.StatusBadRequest, errors.Errorf("Invalid wrap value: %q", w)
		}
	}

	e, err := enc.NewEncoderByName(chi.URLParam(r, "codec"), query.Get("alphabet"), wrap)
	if errors.Is(err, enc.ErrUnknownEncoder) {
		return nil, http.StatusNotFound, err
	} else if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return e, http.StatusOK, nil
}

func isHTML(r *http.Request) bool {
	return strings.EqualFold(chi.URLParam(r, "codec"), htmlCodec)
}

func (h *handlers) codecs(w http.ResponseWriter, r *http.Request) {
	list := Codecs()
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("Codecs: %s", spew.Sdump(list))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.WithError(err).Warnf("Could not write the codec list: %v", err)
	}
}

// trackingWriter remembers if anything reached the client, i.e. if it's too late to report an error
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(p)
}

// bodyErrorStatus returns the status to report for a failure while reading the request body
func bodyErrorStatus(err error) int {
	if strings.Contains(err.Error(), "request body too large") {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// readBody reads the whole request body, up to the configured limit
func (h *handlers) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		http.Error(w, err.Error(), bodyErrorStatus(err))
		return nil, false
	}
	return body, true
}

func (h *handlers) encode(w http.ResponseWriter, r *http.Request) {
	if isHTML(r) {
		body, ok := h.readBody(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(enc.NewHTMLEscaper(enc.WithNonASCII()).EscapeString(string(body))))
		return
	}

	e, status, err := encoderFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=us-ascii")

	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if s, ok := e.(enc.StreamEncoder); ok {
		tw := &trackingWriter{ResponseWriter: w}
		written, err := s.EncodeStream(body, tw)
		if err != nil {
			if !tw.wrote {
				http.Error(w, err.Error(), bodyErrorStatus(err))
			} else {
				log.WithError(err).Warnf("Encoding with %v failed after %d bytes: %v", e, written, err)
			}
		}
		return
	}

	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	_, _ = w.Write(e.Encode(data))
}

// decode always works on the whole body, so that invalid input is reported before anything is written
func (h *handlers) decode(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	if isHTML(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(enc.NewHTMLEscaper().UnescapeString(string(body))))
		return
	}

	e, status, err := encoderFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	data, err := e.Decode(bytes.TrimSpace(body))
	if err != nil {
		log.Debugf("Invalid %v input: %v", e, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
