package transfers

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/solana"
)

// AnchorError is an error code raised by the Anchor framework before or
// around the program's own handler. Program defined errors start at 6000.
type AnchorError uint32

const (
	InstructionMissing           AnchorError = 100
	InstructionFallbackNotFound  AnchorError = 101
	InstructionDidNotDeserialize AnchorError = 102
	InstructionDidNotSerialize   AnchorError = 103

	ConstraintMut        AnchorError = 2000
	ConstraintHasOne     AnchorError = 2001
	ConstraintSigner     AnchorError = 2002
	ConstraintRaw        AnchorError = 2003
	ConstraintOwner      AnchorError = 2004
	ConstraintRentExempt AnchorError = 2005
	ConstraintSeeds      AnchorError = 2006
	ConstraintAddress    AnchorError = 2012
	ConstraintTokenMint  AnchorError = 2014
	ConstraintTokenOwner AnchorError = 2015

	RequireViolated AnchorError = 2500

	AccountDiscriminatorMismatch     AnchorError = 3002
	AccountDidNotDeserialize         AnchorError = 3003
	AccountNotEnoughKeys             AnchorError = 3005
	AccountNotMutable                AnchorError = 3006
	AccountOwnedByWrongProgram       AnchorError = 3007
	InvalidProgramId                 AnchorError = 3008
	InvalidProgramExecutable         AnchorError = 3009
	AccountNotSigner                 AnchorError = 3010
	AccountNotSystemOwned            AnchorError = 3011
	AccountNotInitialized            AnchorError = 3012
	AccountNotProgramData            AnchorError = 3013
	AccountNotAssociatedTokenAccount AnchorError = 3014

	DeclaredProgramIdMismatch AnchorError = 4100

	customProgramErrorOffset = 6000
)

var anchorErrorNames = map[AnchorError]string{
	InstructionMissing:               "InstructionMissing",
	InstructionFallbackNotFound:      "InstructionFallbackNotFound",
	InstructionDidNotDeserialize:     "InstructionDidNotDeserialize",
	InstructionDidNotSerialize:       "InstructionDidNotSerialize",
	ConstraintMut:                    "ConstraintMut",
	ConstraintHasOne:                 "ConstraintHasOne",
	ConstraintSigner:                 "ConstraintSigner",
	ConstraintRaw:                    "ConstraintRaw",
	ConstraintOwner:                  "ConstraintOwner",
	ConstraintRentExempt:             "ConstraintRentExempt",
	ConstraintSeeds:                  "ConstraintSeeds",
	ConstraintAddress:                "ConstraintAddress",
	ConstraintTokenMint:              "ConstraintTokenMint",
	ConstraintTokenOwner:             "ConstraintTokenOwner",
	RequireViolated:                  "RequireViolated",
	AccountDiscriminatorMismatch:     "AccountDiscriminatorMismatch",
	AccountDidNotDeserialize:         "AccountDidNotDeserialize",
	AccountNotEnoughKeys:             "AccountNotEnoughKeys",
	AccountNotMutable:                "AccountNotMutable",
	AccountOwnedByWrongProgram:       "AccountOwnedByWrongProgram",
	InvalidProgramId:                 "InvalidProgramId",
	InvalidProgramExecutable:         "InvalidProgramExecutable",
	AccountNotSigner:                 "AccountNotSigner",
	AccountNotSystemOwned:            "AccountNotSystemOwned",
	AccountNotInitialized:            "AccountNotInitialized",
	AccountNotProgramData:            "AccountNotProgramData",
	AccountNotAssociatedTokenAccount: "AccountNotAssociatedTokenAccount",
	DeclaredProgramIdMismatch:        "DeclaredProgramIdMismatch",
}

func (e AnchorError) Error() string {
	if name, ok := anchorErrorNames[e]; ok {
		return fmt.Sprintf("anchor error %d: %s", uint32(e), name)
	}
	return fmt.Sprintf("anchor error %d", uint32(e))
}

// GetAnchorError extracts the Anchor framework error from a failed
// transaction. It returns false for errors that aren't custom program errors
// below the program's own error range.
func GetAnchorError(err error) (AnchorError, bool) {
	var txErr *solana.TransactionError
	if !errors.As(err, &txErr) || txErr.InstructionError() == nil {
		return 0, false
	}

	custom := txErr.InstructionError().CustomError()
	if custom == nil || *custom < 0 || *custom >= customProgramErrorOffset {
		return 0, false
	}

	return AnchorError(*custom), true
}
