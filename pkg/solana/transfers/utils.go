package transfers

import (
	"github.com/code-payments/solana-transfers/pkg/solana/binary"
)

const (
	// AmountInstructionArgsSize is the size of the single u64 argument every
	// instruction takes.
	AmountInstructionArgsSize = 8 // amount

	amountInstructionDataSize = binary.DiscriminatorSize + AmountInstructionArgsSize
)

type AmountInstructionArgs struct {
	Amount uint64
}

func putAmountInstructionData(t InstructionType, args *AmountInstructionArgs) []byte {
	var offset int

	data := make([]byte, amountInstructionDataSize)

	binary.PutDiscriminator(data, t.Discriminator(), &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return data
}

func getAmountInstructionData(data []byte) (InstructionType, *AmountInstructionArgs, error) {
	if len(data) != amountInstructionDataSize {
		return Unknown, nil, ErrInvalidInstructionData
	}

	t := GetInstructionType(data)
	if t == Unknown {
		return Unknown, nil, ErrInvalidInstructionData
	}

	offset := binary.DiscriminatorSize
	var args AmountInstructionArgs
	binary.GetUint64(data, &args.Amount, &offset)

	return t, &args, nil
}
