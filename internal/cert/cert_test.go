package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/youmark/pkcs8"
)

// selfSigned creates a certificate and returns it together with its key
func selfSigned(t *testing.T) ([]byte, *ecdsa.PrivateKey) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), key
}

func Test_NoCertificate(t *testing.T) {
	c := &ServerConfig{}
	require.False(t, c.HasCertificate())

	pair, err := c.GetX509KeyPair()
	require.NoError(t, err)
	require.Nil(t, pair)
}

func Test_PlainKey(t *testing.T) {
	certPem, key := selfSigned(t)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	c := &ServerConfig{
		Config: Config{
			Certificate: string(certPem),
			PrivateKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		},
		RequireClientCert: true,
	}
	require.True(t, c.HasCertificate())

	conf, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, conf.Certificates, 1)
	require.Equal(t, tls.RequireAndVerifyClientCert, conf.ClientAuth)
}

func Test_EncryptedKey(t *testing.T) {
	certPem, key := selfSigned(t)
	password := "secret"
	der, err := pkcs8.ConvertPrivateKeyToPKCS8(key, []byte(password))
	require.NoError(t, err)

	dir, err := ioutil.TempDir("", "cert")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, ioutil.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: der}), 0600))

	c := &ServerConfig{
		Config: Config{
			Certificate:    string(certPem),
			PrivateKeyFile: keyFile,
		},
	}

	_, err = c.GetTlsConfig()
	require.Error(t, err, "Encrypted key without a password should fail")

	c.PrivateKeyPassword = &password
	conf, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, conf.Certificates, 1)

	c.PrivateKeyPassword = nil
	c.PrivateKeyPasswordProgram = "echo secret"
	conf, err = c.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, conf.Certificates, 1)
}

func Test_CaCertificates(t *testing.T) {
	certPem, _ := selfSigned(t)

	c := &ServerConfig{Config: Config{CaCertificate: string(certPem)}}
	conf, err := c.GetTlsConfig()
	require.NoError(t, err)
	require.NotNil(t, conf.ClientCAs)

	c = &ServerConfig{Config: Config{CaCertificate: "not a certificate"}}
	_, err = c.GetTlsConfig()
	require.Error(t, err)
}

func Test_InvalidKey(t *testing.T) {
	c := &Config{PrivateKey: "garbage"}
	_, err := c.GetPrivateKey()
	require.Error(t, err)
}
