package postgres

// =============================================================================
// Account SQL
// =============================================================================

const (
	// SQLInsertAccount creates the account with the starting grant, doing
	// nothing when it already exists.
	SQLInsertAccount = `
		INSERT INTO accounts (user_id, coins)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING coins, created_at
	`

	// SQLSelectAccount reads one account row.
	SQLSelectAccount = `
		SELECT coins, created_at
		FROM accounts
		WHERE user_id = $1
	`

	// SQLSelectBalance reads just the balance, used for error reporting
	// after a guarded debit rejects.
	SQLSelectBalance = `SELECT coins FROM accounts WHERE user_id = $1`

	// SQLCreditAccount increments the balance; no row means no account.
	SQLCreditAccount = `
		UPDATE accounts
		SET coins = coins + $2
		WHERE user_id = $1
		RETURNING coins
	`

	// SQLDebitAccount is the guarded decrement: the balance check and the
	// write are one statement, so concurrent debits cannot both pass.
	SQLDebitAccount = `
		UPDATE accounts
		SET coins = coins - $2
		WHERE user_id = $1 AND coins >= $2
		RETURNING coins
	`

	// SQLTopBalances feeds the coins leaderboard.
	SQLTopBalances = `
		SELECT user_id, coins, created_at
		FROM accounts
		ORDER BY coins DESC, user_id
		LIMIT $1
	`
)

// =============================================================================
// Inventory SQL
// =============================================================================

const (
	// SQLUpsertCopies increments the copy count, creating the entry at n.
	SQLUpsertCopies = `
		INSERT INTO inventory_entries (user_id, card_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, card_id) DO UPDATE
		SET quantity = inventory_entries.quantity + EXCLUDED.quantity
		RETURNING quantity
	`

	// SQLRemoveCopies is the guarded decrement for copy counts. Removing the
	// last copies deletes the row in the same statement, so the table's
	// CHECK (quantity >= 1) never sees a zero and no quantity-0 row exists.
	// No row back means the user holds fewer than $3 copies.
	SQLRemoveCopies = `
		WITH decremented AS (
			UPDATE inventory_entries
			SET quantity = quantity - $3
			WHERE user_id = $1 AND card_id = $2 AND quantity > $3
			RETURNING quantity
		), emptied AS (
			DELETE FROM inventory_entries
			WHERE user_id = $1 AND card_id = $2 AND quantity = $3
			RETURNING 0 AS quantity
		)
		SELECT quantity FROM decremented
		UNION ALL
		SELECT quantity FROM emptied
	`

	// SQLSelectQuantity reads one copy count.
	SQLSelectQuantity = `
		SELECT quantity
		FROM inventory_entries
		WHERE user_id = $1 AND card_id = $2
	`

	// SQLSelectEntries lists a user's inventory.
	SQLSelectEntries = `
		SELECT card_id, quantity, acquired_at
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY acquired_at
	`

	// SQLTopCollectors feeds the collection leaderboard.
	SQLTopCollectors = `
		SELECT user_id, COUNT(DISTINCT card_id) AS unique_cards
		FROM inventory_entries
		GROUP BY user_id
		ORDER BY unique_cards DESC, user_id
		LIMIT $1
	`
)

// =============================================================================
// Listing SQL
// =============================================================================

const (
	SQLInsertListing = `
		INSERT INTO listings (listing_code, seller_id, card_id, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	SQLSelectListing = `
		SELECT seller_id, card_id, unit_price, quantity, created_at
		FROM listings
		WHERE listing_code = $1
	`

	// SQLSelectListingForUpdate row-locks a listing so concurrent purchases
	// serialize; the loser of the race sees the row already deleted.
	SQLSelectListingForUpdate = SQLSelectListing + ` FOR UPDATE`

	SQLDeleteListing = `DELETE FROM listings WHERE listing_code = $1`

	SQLSelectListings = `
		SELECT l.listing_code, l.seller_id, l.card_id, l.unit_price, l.quantity, l.created_at,
		       c.card_code, c.name, c.group_name, COALESCE(c.era, ''), c.rarity,
		       c.droppable, c.is_limited, COALESCE(c.event_tag, ''), COALESCE(c.image_url, ''), c.created_at
		FROM listings l
		JOIN cards c ON c.card_id = l.card_id
		WHERE ($2 = 0 OR l.card_id = $2)
		  AND ($3 = '' OR l.seller_id = $3)
		  AND ($4 = 0 OR l.unit_price <= $4)
		ORDER BY l.created_at DESC
		LIMIT $1
	`
)

// =============================================================================
// Catalog SQL
// =============================================================================

const (
	sqlCardColumns = `
		card_id, card_code, name, group_name, COALESCE(era, ''), rarity,
		droppable, is_limited, COALESCE(event_tag, ''), COALESCE(image_url, ''), created_at
	`

	SQLSelectCardByID   = `SELECT ` + sqlCardColumns + ` FROM cards WHERE card_id = $1`
	SQLSelectCardByCode = `SELECT ` + sqlCardColumns + ` FROM cards WHERE UPPER(card_code) = UPPER($1)`

	SQLSelectCards = `
		SELECT ` + sqlCardColumns + `
		FROM cards
		WHERE ($1 = 0 OR rarity = $1)
		  AND ($2 = '' OR group_name = $2)
		  AND (NOT $3 OR droppable)
		ORDER BY group_name, name
	`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgBeginTxFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed = "failed to commit transaction: %w"
)
