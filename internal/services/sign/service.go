package sign

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"dfxid/internal/domain"
	"dfxid/internal/protocol/envelope"
	"dfxid/internal/services/identity"
	"dfxid/internal/transport/offline"
)

const (
	// DefaultNetwork is written when neither the template nor the request names one.
	DefaultNetwork = "local"
	// DefaultExpiry is the ingress expiry offset from the creation time.
	DefaultExpiry = 5 * time.Minute
)

var (
	ErrMissingOutput   = errors.New("no output file given")
	ErrMissingCanister = errors.New("no canister id given")
	ErrMissingMethod   = errors.New("no method name given")
)

// Identities yields the identity that signs for this process.
type Identities interface {
	InstantiateSelectedIdentity() (*identity.Identity, error)
}

// Request describes one call to sign offline. Zero fields fall back to the
// template file, then to defaults.
type Request struct {
	CallType   domain.CallType
	CanisterID string
	MethodName string
	Arg        []byte
	Network    string
	Expiry     time.Duration
	Output     string
	Template   string
}

// Result is a successfully written signed message.
type Result struct {
	offline.Outcome
	RequestID domain.RequestID
	Sender    string
	Identity  string
}

// Service signs calls with the selected identity and writes them to disk.
type Service struct {
	ids Identities
	now func() time.Time
	log *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger sets the logger used for progress messages.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// New constructs a sign Service.
func New(ids Identities, opts ...Option) *Service {
	s := &Service{ids: ids, now: time.Now, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign builds, signs and writes req. The returned Result carries the path of
// the written message.
func (s *Service) Sign(ctx context.Context, req Request) (Result, error) {
	if req.Output == "" {
		return Result{}, ErrMissingOutput
	}
	call := req.CallType
	if call == "" {
		call = domain.CallQuery
	}

	id, err := s.ids.InstantiateSelectedIdentity()
	if err != nil {
		return Result{}, err
	}
	sender, err := id.Principal()
	if err != nil {
		return Result{}, fmt.Errorf("identity %s: %w", id.Name, err)
	}

	msg, err := s.message(req, sender)
	if err != nil {
		return Result{}, err
	}
	arg, err := hex.DecodeString(msg.Arg)
	if err != nil {
		return Result{}, fmt.Errorf("arg is not hex: %w", err)
	}

	env, requestID, err := envelope.Build(id, envelope.Request{
		CallType:      call,
		CanisterID:    msg.CanisterID,
		MethodName:    msg.MethodName,
		Arg:           arg,
		IngressExpiry: msg.IngressExpiry,
	})
	if err != nil {
		return Result{}, err
	}

	tr := offline.New(req.Output, msg)
	switch call {
	case domain.CallQuery:
		_, err = tr.Read(ctx, env)
	default:
		err = tr.Submit(ctx, env, requestID)
	}

	out, ok := offline.Written(err)
	if !ok {
		if err == nil {
			err = fmt.Errorf("offline transport returned without writing %s", req.Output)
		}
		return Result{}, err
	}
	s.log.Info("signed message written",
		"identity", id.Name,
		"call_type", call,
		"canister_id", msg.CanisterID,
		"method", msg.MethodName,
		"request_id", requestID.String(),
		"path", out.Path,
	)
	return Result{Outcome: out, RequestID: requestID, Sender: sender, Identity: id.Name}, nil
}

func (s *Service) message(req Request, sender string) (domain.SignedMessage, error) {
	now := s.now()
	msg := domain.SignedMessage{
		Version:  domain.SignedMessageVersion,
		Network:  DefaultNetwork,
		Creation: uint64(now.UnixNano()),
	}
	if req.Template != "" {
		tmpl, err := LoadTemplate(req.Template)
		if err != nil {
			return domain.SignedMessage{}, err
		}
		msg = msg.Merge(tmpl)
	}

	explicit := domain.SignedMessage{
		Network:    req.Network,
		CanisterID: req.CanisterID,
		MethodName: req.MethodName,
	}
	if len(req.Arg) > 0 {
		explicit.Arg = hex.EncodeToString(req.Arg)
	}
	if req.Expiry > 0 {
		explicit.IngressExpiry = uint64(now.Add(req.Expiry).UnixNano())
	}
	msg = msg.Merge(explicit)

	if msg.IngressExpiry == 0 {
		msg.IngressExpiry = uint64(now.Add(DefaultExpiry).UnixNano())
	}
	msg.Sender = sender

	switch {
	case msg.CanisterID == "":
		return domain.SignedMessage{}, ErrMissingCanister
	case msg.MethodName == "":
		return domain.SignedMessage{}, ErrMissingMethod
	}
	return msg, nil
}
