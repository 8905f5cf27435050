// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/rpc/credit"
)

// Balance - retrieve the spendable credits of an account
func (client *Client) Balance(owner *account.Account) (*credit.BalanceReply, error) {

	balanceArgs := credit.BalanceArguments{
		Account: owner,
	}

	client.printJson("Balance Request", balanceArgs)

	reply := &credit.BalanceReply{}
	err := client.client.Call("Credit.Balance", balanceArgs, reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}

// Allowance - retrieve what a spender may still draw from an owner
func (client *Client) Allowance(owner *account.Account, spender *account.Account) (*credit.AllowanceReply, error) {

	allowanceArgs := credit.AllowanceArguments{
		Owner:   owner,
		Spender: spender,
	}

	client.printJson("Allowance Request", allowanceArgs)

	reply := &credit.AllowanceReply{}
	err := client.client.Call("Credit.Allowance", allowanceArgs, reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Allowance Reply", reply)

	return reply, nil
}

// fetch the next sequence number the node expects from an account
// every signed record carries this to prevent replays
func (client *Client) nextSequence(acct *account.Account) (uint64, error) {

	balanceArgs := credit.BalanceArguments{
		Account: acct,
	}

	var reply credit.BalanceReply
	err := client.client.Call("Credit.Balance", balanceArgs, &reply)
	if err != nil {
		return 0, err
	}

	return reply.Sequence, nil
}
