package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bokysan/codecs/internal/args"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
)

// Config is the certificate configuration of the HTTP codec service. Each of the PEM blocks may be given
// inline or as a file. Relative file names are looked up next to the configuration file first.
type Config struct {
	CaCertificate             string  `json:"caCertificate" long:"ca-certificate" env:"CA_CERTIFICATE" description:"CA certificate(s) used to verify the clients"`
	CaCertificateFile         string  `json:"caCertificateFile" long:"ca-certificate-file" env:"CA_CERTIFICATE_FILE" description:"File with CA certificate(s)"`
	Certificate               string  `json:"certificate" long:"certificate" env:"CERTIFICATE" description:"Server certificate"`
	CertificateFile           string  `json:"certificateFile" long:"certificate-file" env:"CERTIFICATE_FILE" description:"File with the server certificate"`
	PrivateKey                string  `json:"privateKey" long:"private-key" env:"PRIVATE_KEY" description:"Server private key"`
	PrivateKeyFile            string  `json:"privateKeyFile" long:"private-key-file" env:"PRIVATE_KEY_FILE" description:"File with the server private key"`
	PrivateKeyPassword        *string `json:"privateKeyPassword" long:"private-key-password" env:"PRIVATE_KEY_PASSWORD" description:"Decryption password"`
	PrivateKeyPasswordProgram string  `json:"privateKeyPasswordProgram" long:"private-key-password-program" env:"PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption key"`
}

// ServerConfig is the certificate configuration with server-specific extensions
type ServerConfig struct {
	Config
	RequireClientCert bool `json:"requireClientCert" long:"require-client-cert" env:"REQUIRE_CLIENT_CERT" description:"If set, the client must authenticate with its certificate."`
}

// HasCertificate returns true if a certificate was configured, i.e. the server should listen on HTTPS
func (m *Config) HasCertificate() bool {
	return m.Certificate != "" || m.CertificateFile != ""
}

func (m *Config) GetCertificate() ([]byte, error) {
	if m.CertificateFile != "" {
		certPemBlock, err := ioutil.ReadFile(findFile(m.CertificateFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read certificate file: %s", m.CertificateFile)
		}
		return certPemBlock, nil
	} else if m.Certificate != "" {
		return []byte(strings.TrimSpace(m.Certificate)), nil
	}
	return nil, nil
}

// GetPrivateKey returns the private key as an unencrypted PEM block. Encrypted PKCS#8 keys and legacy encrypted
// PEM blocks are decrypted with the configured password.
func (m *Config) GetPrivateKey() (privateKeyPemBlock []byte, err error) {
	if m.PrivateKeyFile != "" {
		privateKeyPemBlock, err = ioutil.ReadFile(findFile(m.PrivateKeyFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read private key file: %s", m.PrivateKeyFile)
		}
	} else if m.PrivateKey != "" {
		privateKeyPemBlock = []byte(strings.TrimSpace(m.PrivateKey))
	}

	if len(privateKeyPemBlock) == 0 {
		return nil, nil
	}

	block, _ := pem.Decode(privateKeyPemBlock)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}

		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	} else if x509.IsEncryptedPEMBlock(block) { //nolint:staticcheck
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		der, err := x509.DecryptPEMBlock(block, password) //nolint:staticcheck
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return privateKeyPemBlock, nil
}

func (m *Config) GetPrivateKeyPassword() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := &bytes.Buffer{}
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined!")
}

func (m *Config) GetX509KeyPair() (*tls.Certificate, error) {
	certPemBlock, err := m.GetCertificate()
	if err != nil {
		return nil, err
	}
	privateKeyPemBlock, err := m.GetPrivateKey()
	if err != nil {
		return nil, err
	}

	if len(certPemBlock) == 0 && len(privateKeyPemBlock) == 0 {
		return nil, nil
	}

	cert, err := tls.X509KeyPair(certPemBlock, privateKeyPemBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data!")
	}
	return &cert, nil
}

func (m *Config) GetCaCertificates() ([]byte, error) {
	if m.CaCertificateFile != "" {
		certPemBlock, err := ioutil.ReadFile(findFile(m.CaCertificateFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read ca certificate file: %s", m.CaCertificateFile)
		}
		return certPemBlock, nil
	} else if m.CaCertificate != "" {
		return []byte(strings.TrimSpace(m.CaCertificate)), nil
	}
	return nil, nil
}

func (m *Config) addCaCertificates(config *tls.Config) error {
	caCert, err := m.GetCaCertificates()
	if err != nil {
		return errors.Wrapf(err, "Could not load CA certificates")
	}

	if caCert != nil {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			return errors.Errorf("Could not parse CA certificates")
		}
		config.ClientCAs = caCertPool
	}

	return nil
}

func (m *Config) GetTlsConfig() (*tls.Config, error) {
	conf := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if crt, err := m.GetX509KeyPair(); err != nil {
		return nil, errors.Wrapf(err, "Could not read certificate pair")
	} else if crt != nil {
		conf.Certificates = []tls.Certificate{*crt}
	}
	if err := m.addCaCertificates(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	log.Debugf("ServerConfig.GetTlsConfig(), RequireClientCert=%v", m.RequireClientCert)

	conf, err := m.Config.GetTlsConfig()
	if err != nil {
		return nil, err
	}
	if m.RequireClientCert {
		conf.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return conf, nil
}

// findFile will try to locate the file based on relative path of the configuration location and,
// failing that, return the provided location as is
func findFile(name string) string {
	if args.General.ConfigurationFilePath != "" && !filepath.IsAbs(name) {
		file := filepath.Join(filepath.Dir(args.General.ConfigurationFilePath), name)
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	return name
}
