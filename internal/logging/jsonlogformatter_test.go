package logging

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func Test_JSONLogEntry_Write(t *testing.T) {
	out := &bytes.Buffer{}
	output, formatter, level := logrus.StandardLogger().Out, logrus.StandardLogger().Formatter, logrus.GetLevel()
	defer func() {
		logrus.SetOutput(output)
		logrus.SetFormatter(formatter)
		logrus.SetLevel(level)
	}()
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.DebugLevel)

	r := httptest.NewRequest("POST", "/encode/base64?wrap=76", nil)
	f := &JSONLogFormatter{ServerAddress: &net.TCPAddr{Port: 8080}}
	f.NewLogEntry(r).Write(200, 12, nil, time.Millisecond, nil)

	entry := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "codecs", entry["app"])
	require.Equal(t, "POST", entry["request_method"])
	require.Equal(t, "wrap=76", entry["query_string"])
	require.Equal(t, float64(200), entry["status"])
	require.Equal(t, float64(8080), entry["server_port"])
}
