package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
)

// nativeTransferGasLimit is the fixed gas cost of a plain value transfer.
const nativeTransferGasLimit = uint64(21000)

// rpcSigner signs and broadcasts native transfers for one account over a
// JSON-RPC node.
type rpcSigner struct {
	client         *ethclient.Client
	key            *ecdsa.PrivateKey
	from           common.Address
	chainID        *big.Int
	rpcCallTimeout time.Duration
	receiptPolls   *rate.Limiter
	logger         *zap.Logger
}

// SendTransfer builds, signs and broadcasts a value transfer and returns a
// handle tracking it to inclusion.
func (s *rpcSigner) SendTransfer(ctx context.Context, to string, valueWei *big.Int) (port.PendingTransfer, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.rpcCallTimeout)
	defer cancel()

	nonce, err := s.client.PendingNonceAt(callCtx, s.from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := s.client.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}

	recipient := common.HexToAddress(to)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      nativeTransferGasLimit,
		To:       &recipient,
		Value:    valueWei,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := s.client.SendTransaction(callCtx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	s.logger.Info("transfer broadcast",
		zap.String("txHash", signedTx.Hash().Hex()),
		zap.String("to", recipient.Hex()))

	return &pendingTransfer{
		client:         s.client,
		txHash:         signedTx.Hash(),
		rpcCallTimeout: s.rpcCallTimeout,
		polls:          s.receiptPolls,
		logger:         s.logger,
	}, nil
}

// pendingTransfer polls the chain for the transaction receipt.
type pendingTransfer struct {
	client         *ethclient.Client
	txHash         common.Hash
	rpcCallTimeout time.Duration
	polls          *rate.Limiter
	logger         *zap.Logger
}

// Wait blocks until the transaction is included. The wait itself is
// unbounded (inclusion can take minutes); only the poll frequency is paced
// and individual receipt lookups carry the RPC call timeout. Cancelling ctx
// abandons the wait.
func (p *pendingTransfer) Wait(ctx context.Context) (entity.Receipt, error) {
	for {
		if err := p.polls.Wait(ctx); err != nil {
			return entity.Receipt{}, err
		}

		callCtx, cancel := context.WithTimeout(ctx, p.rpcCallTimeout)
		receipt, err := p.client.TransactionReceipt(callCtx, p.txHash)
		cancel()

		switch {
		case err == nil:
			return entity.Receipt{
				TxHash:      p.txHash.Hex(),
				Status:      receipt.Status,
				BlockNumber: receipt.BlockNumber.Uint64(),
			}, nil
		case errors.Is(err, ethereum.NotFound):
			// Not mined yet, keep polling.
		default:
			if ctx.Err() != nil {
				return entity.Receipt{}, ctx.Err()
			}
			p.logger.Debug("receipt lookup failed, retrying",
				zap.String("txHash", p.txHash.Hex()),
				zap.Error(err))
		}
	}
}

// BlockTimestamp returns the unix timestamp of the given block.
func (p *pendingTransfer) BlockTimestamp(ctx context.Context, blockNumber uint64) (int64, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.rpcCallTimeout)
	defer cancel()

	header, err := p.client.HeaderByNumber(callCtx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch block %d header: %w", blockNumber, err)
	}
	return int64(header.Time), nil
}
