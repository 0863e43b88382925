// Copyright (c) 2018 IoTeX
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/holiman/uint256"
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-proto/golang/iotextypes"
	"google.golang.org/protobuf/proto"

	"github.com/iotexproject/iotex-donation/pkg/log"
)

type (
	// Receipt represents the result of a contract call
	Receipt struct {
		Status          uint64
		BlockHeight     uint64
		ActionHash      hash.Hash256
		ContractAddress string
		ReturnValue     []byte
		logs            []*Log
		transactionLogs []*TransactionLog
	}

	// Log stores an informational contract event
	Log struct {
		Address     string
		Topics      []hash.Hash256
		Data        []byte
		BlockHeight uint64
		ActionHash  hash.Hash256
		Index       uint32
	}

	// TransactionLog is a value movement caused by a call
	TransactionLog struct {
		Type      iotextypes.TransactionLogType
		Amount    *uint256.Int
		Sender    string
		Recipient string
	}
)

// SuccessReceiptStatus is the status of a successful call
var SuccessReceiptStatus = uint64(iotextypes.ReceiptStatus_Success)

// ConvertToReceiptPb converts a Receipt to protobuf's Receipt
func (receipt *Receipt) ConvertToReceiptPb() *iotextypes.Receipt {
	r := &iotextypes.Receipt{}
	r.Status = receipt.Status
	r.BlkHeight = receipt.BlockHeight
	r.ActHash = receipt.ActionHash[:]
	r.ContractAddress = receipt.ContractAddress
	r.Logs = []*iotextypes.Log{}
	for _, l := range receipt.logs {
		r.Logs = append(r.Logs, l.ConvertToLogPb())
	}
	return r
}

// Serialize returns a serialized byte stream for the Receipt
func (receipt *Receipt) Serialize() ([]byte, error) {
	return proto.Marshal(receipt.ConvertToReceiptPb())
}

// Hash returns the hash of receipt
func (receipt *Receipt) Hash() hash.Hash256 {
	data, err := receipt.Serialize()
	if err != nil {
		log.L().Panic("Error when serializing a receipt")
	}
	return hash.Hash256b(data)
}

// Logs returns the list of logs stored in receipt
func (receipt *Receipt) Logs() []*Log {
	return receipt.logs
}

// AddLogs adds log to receipt and filter out nil log.
func (receipt *Receipt) AddLogs(logs ...*Log) *Receipt {
	for _, l := range logs {
		if l != nil {
			l.Index = uint32(len(receipt.logs))
			receipt.logs = append(receipt.logs, l)
		}
	}
	return receipt
}

// TransactionLogs returns the list of transaction logs stored in receipt
func (receipt *Receipt) TransactionLogs() []*TransactionLog {
	return receipt.transactionLogs
}

// AddTransactionLogs adds transaction logs to receipt and filter out nil log.
func (receipt *Receipt) AddTransactionLogs(logs ...*TransactionLog) *Receipt {
	for _, l := range logs {
		if l != nil {
			receipt.transactionLogs = append(receipt.transactionLogs, l)
		}
	}
	return receipt
}

// TransactionLogProto returns the transaction logs in protobuf, nil if the call moved no value
func (receipt *Receipt) TransactionLogProto() *iotextypes.TransactionLog {
	if len(receipt.transactionLogs) == 0 {
		return nil
	}
	txLog := &iotextypes.TransactionLog{
		ActionHash:   receipt.ActionHash[:],
		Transactions: []*iotextypes.TransactionLog_Transaction{},
	}
	for _, l := range receipt.transactionLogs {
		txLog.Transactions = append(txLog.Transactions, l.toProto())
		txLog.NumTransactions++
	}
	return txLog
}

func (l *TransactionLog) toProto() *iotextypes.TransactionLog_Transaction {
	amount := "0"
	if l.Amount != nil {
		amount = l.Amount.Dec()
	}
	return &iotextypes.TransactionLog_Transaction{
		Amount:    amount,
		Sender:    l.Sender,
		Recipient: l.Recipient,
		Type:      l.Type,
	}
}

// ConvertToLogPb converts a Log to protobuf's Log
func (l *Log) ConvertToLogPb() *iotextypes.Log {
	pbLog := &iotextypes.Log{}
	pbLog.ContractAddress = l.Address
	pbLog.Topics = [][]byte{}
	for _, topic := range l.Topics {
		pbLog.Topics = append(pbLog.Topics, topic[:])
	}
	pbLog.Data = l.Data
	pbLog.BlkHeight = l.BlockHeight
	pbLog.ActHash = l.ActionHash[:]
	pbLog.Index = l.Index
	return pbLog
}
