/*
Package donation implements Donation contract which keeps tips collected from
donations to stories.

A donation names a story, an asset, a receiver, an amount and tips. The amount
is forwarded to the receiver right away while tips stay on the contract
balance until the contract owner withdraws them. Contract owner is the account
that deployed the contract, it also maintains the registry of accepted NEP-17
tokens. Native GAS is always accepted.

Assets are identified by symbols: Keccak-256 digests of human-readable token
symbols. The digest of "NATIVE" stands for GAS and is never stored in the
registry.

GAS donations are made by GAS transfer to the contract with deposit data
(storyID, symbol, receiver, amount, tips); transferred value must equal
amount + tips. The same works for registered tokens. Registered tokens can
also be pulled from the donor with `donate` method if the donor witnesses the
transaction. Transfers without data just top up the contract balance.

The contract keeps no balance counters, balances are always read from the
asset contracts.

# Contract notifications

Donation notification. This notification is produced on every successful
donation.

	Donation:
	  - name: storyID
	    type: Integer
	  - name: symbol
	    type: ByteArray
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tips
	    type: Integer

# Contract storage scheme

	| Key                 | Value        |
	|---------------------|--------------|
	| 'o'                 | owner        |
	| 't' + symbol        | token hash   |
*/
package donation
