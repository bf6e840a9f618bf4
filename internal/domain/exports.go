package domain

import (
	interfaces "dfxid/internal/domain/interfaces"
	types "dfxid/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	GlobalConfiguration           = types.GlobalConfiguration
	IdentityConfiguration         = types.IdentityConfiguration
	HardwareIdentityConfiguration = types.HardwareIdentityConfiguration
	CreationParameters            = types.CreationParameters
	CallType                      = types.CallType
	RequestID                     = types.RequestID
	SignedMessage                 = types.SignedMessage
)

// Call kinds written into a SignedMessage.
const (
	CallQuery  = types.CallQuery
	CallUpdate = types.CallUpdate
)

// SignedMessageVersion is the document version written by offline signing.
const SignedMessageVersion = types.SignedMessageVersion

// Well-known identity names.
const (
	DefaultIdentityName   = types.DefaultIdentityName
	AnonymousIdentityName = types.AnonymousIdentityName
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Signer        = interfaces.Signer
	Transport     = interfaces.Transport
	ConfigStore   = interfaces.ConfigStore
	IdentityStore = interfaces.IdentityStore
)
