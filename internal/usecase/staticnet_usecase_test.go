package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/codec"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/validation"
)

type memoryRepository struct {
	docs  map[string][]domain.HostStaticNetworkConfig
	loads int
	saves int
	err   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{docs: map[string][]domain.HostStaticNetworkConfig{}}
}

func (r *memoryRepository) Load(_ context.Context, key string) ([]domain.HostStaticNetworkConfig, error) {
	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	return r.docs[key], nil
}

func (r *memoryRepository) Save(_ context.Context, key string, configs []domain.HostStaticNetworkConfig) error {
	r.saves++
	if r.err != nil {
		return r.err
	}
	r.docs[key] = configs
	return nil
}

type countingLocator struct {
	calls int
}

func (l *countingLocator) Locate(_ context.Context, id string) (string, error) {
	l.calls++
	if id == "missing" {
		return "", errors.New("host group not found")
	}
	return "infra-" + id, nil
}

func intPtr(i int) *int { return &i }

func networkWide(protocolType domain.ProtocolType) domain.FormViewNetworkWideValues {
	values := domain.FormViewNetworkWideValues{
		ProtocolType: protocolType,
		IPConfigs: map[domain.ProtocolVersion]domain.IPConfig{
			domain.IPv4: {MachineNetwork: domain.Cidr{IP: "192.0.2.0", PrefixLength: intPtr(24)}, Gateway: "192.0.2.1"},
			domain.IPv6: {},
		},
		DNS: "8.8.8.8",
	}
	if protocolType == domain.ProtocolTypeDualStack {
		values.IPConfigs[domain.IPv6] = domain.IPConfig{
			MachineNetwork: domain.Cidr{IP: "2001:db8::", PrefixLength: intPtr(64)},
			Gateway:        "2001:db8::1",
		}
	}
	return values
}

func host(mac, ipv4, ipv6 string) domain.FormViewHost {
	return domain.FormViewHost{
		MacAddress: mac,
		IPs:        map[domain.ProtocolVersion]string{domain.IPv4: ipv4, domain.IPv6: ipv6},
	}
}

func TestSaveAndLoadFormValues(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	uc := NewStaticNetworkUseCase(repo, nil, cache.New(time.Minute, time.Minute), metrics)

	decoded, err := uc.GetFormValues(ctx, "hg-1")
	require.NoError(t, err)
	assert.Equal(t, codec.StateUninitialized, decoded.State)

	hosts := []domain.FormViewHost{host("AA:BB:CC:DD:EE:FF", "192.0.2.10", "")}
	configs, err := uc.SaveFormValues(ctx, "hg-1", networkWide(domain.ProtocolTypeIPv4), hosts)
	require.NoError(t, err)
	assert.Len(t, configs, 1)
	assert.Equal(t, configs, repo.docs["hg-1"])

	decoded, err = uc.GetFormValues(ctx, "hg-1")
	require.NoError(t, err)
	assert.Equal(t, codec.StateConfigured, decoded.State)
	assert.Equal(t, hosts, decoded.Hosts)

	again, err := uc.GetFormValues(ctx, "hg-1")
	require.NoError(t, err)
	assert.Same(t, decoded, again)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.saves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.decodes.WithLabelValues("configured")))
}

func TestSaveRejectsInvalidValues(t *testing.T) {
	repo := newMemoryRepository()
	uc := NewStaticNetworkUseCase(repo, nil, nil, nil)

	values := networkWide(domain.ProtocolTypeIPv4)
	values.DNS = "127.0.0.1"
	_, err := uc.SaveFormValues(context.Background(), "hg-1", values, nil)
	require.Error(t, err)

	failures := validation.Failures(err)
	require.Len(t, failures, 1)
	assert.Equal(t, "dns", failures[0].Field)
	assert.Equal(t, 0, repo.saves)
}

func TestSaveReconcilesProtocolSwitch(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	uc := NewStaticNetworkUseCase(repo, nil, nil, nil)

	dual := []domain.FormViewHost{host("AA:BB:CC:DD:EE:FF", "192.0.2.10", "2001:db8::10")}
	_, err := uc.SaveFormValues(ctx, "hg-1", networkWide(domain.ProtocolTypeDualStack), dual)
	require.NoError(t, err)

	// switching back to single stack drops the IPv6 address before validation
	single := networkWide(domain.ProtocolTypeIPv4)
	single.IPConfigs[domain.IPv6] = networkWide(domain.ProtocolTypeDualStack).IPConfigs[domain.IPv6]
	_, err = uc.SaveFormValues(ctx, "hg-1", single, dual)
	require.NoError(t, err)

	decoded, err := uc.GetFormValues(ctx, "hg-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProtocolTypeIPv4, decoded.NetworkWide.ProtocolType)
	assert.Equal(t, []domain.FormViewHost{host("AA:BB:CC:DD:EE:FF", "192.0.2.10", "")}, decoded.Hosts)
	assert.Equal(t, domain.IPConfig{}, decoded.NetworkWide.IPConfig(domain.IPv6))

	// upgrading to dual stack without IPv6 addresses blocks the save
	_, err = uc.SaveFormValues(ctx, "hg-1", networkWide(domain.ProtocolTypeDualStack), decoded.Hosts)
	require.Error(t, err)
	assert.Equal(t, "hosts[0].ips.ipv6", validation.Failures(err)[0].Field)
}

func TestMalformedStoredDocuments(t *testing.T) {
	repo := newMemoryRepository()
	repo.docs["hg-1"] = []domain.HostStaticNetworkConfig{{NetworkYAML: "# nonsense\ninterfaces: []\n"}}
	uc := NewStaticNetworkUseCase(repo, nil, nil, nil)

	_, err := uc.GetFormValues(context.Background(), "hg-1")
	var malformed *domain.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "hg-1", malformed.HostGroupID)

	_, err = uc.SaveFormValues(context.Background(), "hg-1", networkWide(domain.ProtocolTypeIPv4), nil)
	assert.True(t, errors.As(err, &malformed))
	assert.Equal(t, 0, repo.saves)
}

func TestStorageErrorsPropagate(t *testing.T) {
	repo := newMemoryRepository()
	repo.err = errors.New("connection refused")
	uc := NewStaticNetworkUseCase(repo, nil, nil, nil)

	_, err := uc.GetDocuments(context.Background(), "hg-1")
	assert.ErrorContains(t, err, "connection refused")
}

func TestLocatorIsCached(t *testing.T) {
	inner := &countingLocator{}
	locator := NewCachedLocator(inner, time.Minute)
	repo := newMemoryRepository()
	uc := NewStaticNetworkUseCase(repo, locator, nil, nil)

	_, err := uc.SaveFormValues(context.Background(), "hg-1", networkWide(domain.ProtocolTypeIPv4), nil)
	require.NoError(t, err)
	_, err = uc.GetFormValues(context.Background(), "hg-1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Contains(t, repo.docs, "infra-hg-1")

	_, err = uc.GetFormValues(context.Background(), "missing")
	assert.ErrorContains(t, err, "host group not found")
}
