package ledger

// Cash and price are stored as decimal strings so balances stay exact.
// No UPDATE or DELETE is ever issued against trades.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	cash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(id),
	symbol TEXT NOT NULL,
	price TEXT NOT NULL,
	shares INTEGER NOT NULL,
	transacted DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);
`
