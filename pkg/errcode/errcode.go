package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ConfigFileError
	ReadConfigError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Field errors
	FieldInvalidError
	FieldDecodeError

	// BlobDir store errors
	StoreNotFoundError
	StoreEncodeError
	StoreDecodeError

	// Add errors
	AddMetaMissingError
	AddMetaExistsError
	AddUnknownKindError
	AddMissingDependencyError
	AddParseError
	AddLinkError
	AddKeyError
	AddTaxIDError
	AddCancelledError

	// Parser errors
	ParseInputError
	ParseIdentifiersError
	ParseColumnsError
	ParseMetaYAMLError

	// Taxdump errors
	TaxdumpReadError
	TaxdumpTaxIDError
)
