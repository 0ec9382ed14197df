package credmarket_test

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container helpers for the CredMarket end-to-end tests. The server runs
 * without SMTP, so every email lands in its JSON log and tests read the
 * verification codes from there.
 */

const (
	testImageName = "credmarket-test:latest"

	staffEmail    = "ops@credmarket.test"
	staffPassword = "Staff-Password-1"
	userPassword  = "correct horse"
)

var otpPattern = regexp.MustCompile(`verification code is: (\d{6})`)

// TestMain builds the Docker image once for every test and removes it
// afterwards. -short skips the suite.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping container tests in -short mode")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building CredMarket Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up CredMarket Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/credmarket/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

type server struct {
	container testcontainers.Container
	baseURL   string
	client    *credsdk.Client
}

// setupServer starts the service with relaxed rate limits.
func setupServer(t *testing.T) *server {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ENV":        "test",
			"LOG_LEVEL":  "info",
			"LOG_FORMAT": "json",
			"SITE_URL":   "http://credmarket.test",
			// Tests make many rapid requests from one address.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &server{container: container, baseURL: baseURL, client: credsdk.NewClient(baseURL)}
}

// ctl runs credmarketctl inside the container and returns its output.
func (s *server) ctl(t *testing.T, args ...string) string {
	t.Helper()

	code, reader, err := s.container.Exec(t.Context(), append([]string{"credmarketctl"}, args...), tcexec.Multiplexed())
	require.NoError(t, err)
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, 0, code, string(out))
	return string(out)
}

// staff creates the operator account and logs it in.
func (s *server) staff(t *testing.T) *credsdk.Session {
	t.Helper()
	s.ctl(t, "create-staff", "--email", staffEmail, "--password", staffPassword)

	sess, err := s.client.LoginSession(t.Context(), staffEmail, staffPassword, "")
	require.NoError(t, err)
	return sess
}

// latestOTP scans the container log for the newest code mailed to email.
func (s *server) latestOTP(t *testing.T, email string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		code = s.findOTP(t, email)
		return code != ""
	}, 10*time.Second, 200*time.Millisecond, "no verification email for %s", email)
	return code
}

func (s *server) findOTP(t *testing.T, email string) string {
	t.Helper()

	logs, err := s.container.Logs(t.Context())
	require.NoError(t, err)
	defer logs.Close()

	var code string
	sc := bufio.NewScanner(logs)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var entry struct {
			Msg  string `json:"msg"`
			Kind string `json:"kind"`
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if json.Unmarshal(sc.Bytes(), &entry) != nil {
			continue
		}
		if entry.Kind != "otp" || entry.To != email {
			continue
		}
		if m := otpPattern.FindStringSubmatch(entry.Body); m != nil {
			code = m[1]
		}
	}
	return code
}

func signupRequest(email string) credsdk.SignupRequest {
	return credsdk.SignupRequest{
		Email:     email,
		Password:  userPassword,
		FirstName: "Alex",
		LastName:  "Doe",
		City:      "Bengaluru",
	}
}

// signupAndVerify runs signup plus verification with the mailed code.
func (s *server) signupAndVerify(t *testing.T, email string) *credsdk.VerifyResponse {
	t.Helper()

	signup, err := s.client.Signup(t.Context(), signupRequest(email))
	require.NoError(t, err)

	verify, err := s.client.Verify(t.Context(), signup.PendingToken, s.latestOTP(t, email))
	require.NoError(t, err)
	return verify
}

func requireAPIError(t *testing.T, err error, code string) *credsdk.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr *credsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code, apiErr.Description)
	return apiErr
}
