// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - something exists that should not
	ExistsError GenericError
	// InvalidError - something is invalid
	InvalidError GenericError
	// LengthError - something is the wrong length
	LengthError GenericError
	// NotFoundError - something was not found
	NotFoundError GenericError
	// ProcessError - something failed during processing
	ProcessError GenericError
	// RecordError - something in a record is wrong
	RecordError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyBound                  = ExistsError("dispatcher is already bound")
	AlreadyInitialised            = ProcessError("already initialised")
	CannotDecodeAccount           = RecordError("cannot decode account")
	CannotDecodePrivateKey        = RecordError("cannot decode private key")
	CannotDecodeSeed              = RecordError("cannot decode seed")
	CertificateFileAlreadyExists  = ExistsError("certificate file already exists")
	ChecksumMismatch              = ProcessError("checksum mismatch")
	ConfigFileNotFound            = NotFoundError("config file is not found")
	ConnectRequired               = InvalidError("connect is required")
	CryptoFailed                  = ProcessError("crypto failed")
	DatabaseIsNotSet              = ProcessError("database is not set")
	DescriptionRequired           = InvalidError("description is required")
	DifferentPasswords            = InvalidError("passwords differ")
	DispatcherNotBound            = ProcessError("dispatcher is not bound")
	IdentityNameAlreadyExists     = ExistsError("identity name already exists")
	IdentityNameNotFound          = NotFoundError("identity name is not found")
	IdentityNameRequired          = InvalidError("identity name is required")
	IncompatibleOptions           = InvalidError("incompatible options")
	IncorrectGenesisData          = InvalidError("genesis data does not match the stored state")
	InsufficientAllowance         = ProcessError("insufficient allowance")
	InsufficientBalance           = ProcessError("insufficient balance")
	InvalidBufferLength           = LengthError("invalid buffer length")
	InvalidConfigurationFile      = InvalidError("invalid configuration file")
	InvalidCount                  = InvalidError("invalid count")
	InvalidCursor                 = InvalidError("invalid cursor")
	InvalidIpAddress              = InvalidError("invalid IP Address")
	InvalidItem                   = InvalidError("invalid item")
	InvalidKeyLength              = LengthError("invalid key length")
	InvalidKeyType                = InvalidError("invalid key type")
	InvalidNetwork                = InvalidError("invalid network")
	InvalidOwnerOrRecipient       = InvalidError("invalid owner or recipient")
	InvalidPortNumber             = InvalidError("invalid port number")
	InvalidPrivateKeyFile         = InvalidError("invalid private key file")
	InvalidPublicKey              = InvalidError("invalid public key")
	InvalidPublicKeyFile          = InvalidError("invalid public key file")
	InvalidRecordName             = InvalidError("invalid record name")
	InvalidSeedHeader             = InvalidError("invalid seed header")
	InvalidSeedLength             = LengthError("invalid seed length")
	InvalidSignature              = InvalidError("invalid signature")
	InvalidStructPointer          = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists          = ExistsError("key file already exists")
	KeyFileNotFound               = NotFoundError("key file is not found")
	MakeAmendmentFailed           = ProcessError("make amendment failed")
	MakeBindingFailed             = ProcessError("make binding failed")
	MakeFeeUpdateFailed           = ProcessError("make fee update failed")
	MakeGrantFailed               = ProcessError("make grant failed")
	MakePaymentFailed             = ProcessError("make payment failed")
	MakeSpendFailed               = ProcessError("make spend failed")
	MakeTransferFailed            = ProcessError("make transfer failed")
	MissingParameters             = LengthError("missing parameters")
	NameTooLong                   = LengthError("name is too long")
	NameTooShort                  = LengthError("name is too short")
	NilPointer                    = InvalidError("nil pointer")
	NotAuthorised                 = InvalidError("not authorised")
	NotAvailableDuringSynchronise = ProcessError("not available during synchronise")
	NotAvailableInReadOnlyMode    = ProcessError("not available in read only mode")
	NotInitialised                = ProcessError("not initialised")
	NotLicensePack                = RecordError("not license pack")
	NotPrivateKey                 = RecordError("not private key")
	NotPublicKey                  = RecordError("not public key")
	NotRecordId                   = RecordError("not record id")
	NotTransactionPack            = RecordError("not transaction pack")
	OutOfSequence                 = InvalidError("request is out of sequence")
	PasswordLength                = LengthError("password length is invalid")
	QuantityTooSmall              = InvalidError("quantity is too small")
	RateLimiting                  = ProcessError("rate limiting active")
	RecordAlreadyExists           = ExistsError("record already exists")
	RecordNotFound                = NotFoundError("record not found")
	RegistrationFailed            = ProcessError("registration failed")
	SignatureTooLong              = LengthError("signature is too long")
	TransactionAlreadyInUse       = ProcessError("transaction already in use")
	UnexpectedRecordType          = RecordError("unexpected record type")
	WrongDispatcherAccount        = InvalidError("wrong dispatcher account")
	WrongNetworkForPrivateKey     = InvalidError("wrong network for private key")
	WrongNetworkForPublicKey      = InvalidError("wrong network for public key")
	WrongPassword                 = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine if an error is a exists error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is an invalid error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if an error is a length error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if an error is a not found error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is a process error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine if an error is a record error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
