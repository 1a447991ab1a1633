package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/codec"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/validation"
)

// ErrSaveFailed is returned instead of the underlying encoding error, which
// is logged.
var ErrSaveFailed = errors.New("failed to save static network configuration")

type StaticNetworkUseCase struct {
	repo    domain.StaticNetworkRepository
	locator domain.HostGroupLocator
	decoded *cache.Cache
	metrics *Metrics
}

// NewStaticNetworkUseCase wires the codec to its storage. decoded caches
// decode results keyed by document set digest and may be nil.
func NewStaticNetworkUseCase(repo domain.StaticNetworkRepository, locator domain.HostGroupLocator, decoded *cache.Cache, metrics *Metrics) *StaticNetworkUseCase {
	if locator == nil {
		locator = IdentityLocator{}
	}
	return &StaticNetworkUseCase{repo: repo, locator: locator, decoded: decoded, metrics: metrics}
}

// GetDocuments returns the stored document set of a host group.
func (uc *StaticNetworkUseCase) GetDocuments(ctx context.Context, hostGroupID string) ([]domain.HostStaticNetworkConfig, error) {
	key, err := uc.locator.Locate(ctx, hostGroupID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to locate host group %s", hostGroupID)
	}
	configs, err := uc.repo.Load(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load documents of host group %s", hostGroupID)
	}
	return configs, nil
}

// GetFormValues loads and decodes the document set of a host group. The
// returned values are shared with the cache and must not be modified.
func (uc *StaticNetworkUseCase) GetFormValues(ctx context.Context, hostGroupID string) (*codec.Decoded, error) {
	configs, err := uc.GetDocuments(ctx, hostGroupID)
	if err != nil {
		return nil, err
	}
	return uc.decode(hostGroupID, configs)
}

func (uc *StaticNetworkUseCase) decode(hostGroupID string, configs []domain.HostStaticNetworkConfig) (*codec.Decoded, error) {
	digest := documentSetDigest(configs)
	if uc.decoded != nil && digest != "" {
		if cached, ok := uc.decoded.Get(digest); ok {
			return cached.(*codec.Decoded), nil
		}
	}

	decoded, err := codec.Decode(configs)
	if err != nil {
		var malformed *domain.MalformedDocumentError
		if errors.As(err, &malformed) {
			malformed.HostGroupID = hostGroupID
		}
		log.Error().Err(err).Str("host_group", hostGroupID).Msg("stored network documents do not decode")
		return nil, err
	}
	uc.metrics.decoded(decoded.State.String())

	if uc.decoded != nil && digest != "" {
		uc.decoded.SetDefault(digest, decoded)
	}
	return decoded, nil
}

// ValidateFormValues runs every validation rule without saving.
func (uc *StaticNetworkUseCase) ValidateFormValues(values *domain.FormViewNetworkWideValues, hosts []domain.FormViewHost) error {
	return validation.Validate(values, hosts)
}

// SaveFormValues replaces the document set of a host group with the encoding
// of the given values. When the protocol type differs from the stored one,
// host addresses are reconciled before validation. Nothing is written unless
// validation passes.
func (uc *StaticNetworkUseCase) SaveFormValues(ctx context.Context, hostGroupID string, values domain.FormViewNetworkWideValues, hosts []domain.FormViewHost) ([]domain.HostStaticNetworkConfig, error) {
	key, err := uc.locator.Locate(ctx, hostGroupID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to locate host group %s", hostGroupID)
	}
	current, err := uc.repo.Load(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load documents of host group %s", hostGroupID)
	}
	stored, err := uc.decode(hostGroupID, current)
	if err != nil {
		uc.metrics.saved("malformed")
		return nil, err
	}

	if stored.State != codec.StateUninitialized && stored.NetworkWide.ProtocolType != values.ProtocolType {
		log.Info().Str("host_group", hostGroupID).
			Msgf("protocol type changed from %s to %s, reconciling %d hosts", stored.NetworkWide.ProtocolType, values.ProtocolType, len(hosts))
		hosts = codec.ReconcileHostProtocols(hosts, values.ProtocolType)
		values = codec.ReconcileNetworkWide(values)
	}

	if err := validation.Validate(&values, hosts); err != nil {
		uc.metrics.saved("invalid")
		return nil, err
	}

	configs, err := codec.Encode(values, hosts)
	if err != nil {
		uc.metrics.saved("error")
		log.Err(err).Str("host_group", hostGroupID).Msg("failed to encode validated form values")
		return nil, ErrSaveFailed
	}

	if err := uc.repo.Save(ctx, key, configs); err != nil {
		uc.metrics.saved("error")
		return nil, errors.Wrapf(err, "failed to save documents of host group %s", hostGroupID)
	}
	uc.metrics.saved("ok")
	log.Info().Str("host_group", hostGroupID).Msgf("saved %d network documents", len(configs))
	return configs, nil
}

func documentSetDigest(configs []domain.HostStaticNetworkConfig) string {
	data, err := json.Marshal(configs)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
