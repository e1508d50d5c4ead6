package main

import (
	"context"
	"database/sql"
	"errors"
)

type InventoryItem struct {
	ID       int64
	ItemType string
	ItemID   string
	Equipped bool
}

var (
	errItemNotFound   = errors.New("ITEM_NOT_FOUND")
	errNotEnoughMoney = errors.New("NOT_ENOUGH_MONEY")
)

func LoadInventory(db *sql.DB, playerID int64) ([]InventoryItem, error) {
	rows, err := db.Query(`
		SELECT id, item_type, item_id, equipped
		FROM inventory
		WHERE player_id = $1
		ORDER BY acquired_at ASC, id ASC
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []InventoryItem{}
	for rows.Next() {
		var item InventoryItem
		if err := rows.Scan(&item.ID, &item.ItemType, &item.ItemID, &item.Equipped); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func grantItem(db *sql.DB, playerID int64, itemType string, itemID string) error {
	_, err := db.Exec(`
		INSERT INTO inventory (player_id, item_type, item_id, equipped, acquired_at)
		VALUES ($1, $2, $3, TRUE, NOW())
	`, playerID, itemType, itemID)

	return err
}

// purchaseItem debits the player and swaps the equipped item of the same
// type in one transaction. At most one item per type stays equipped.
func purchaseItem(db *sql.DB, p *Player, itemType string, itemID string) (int64, error) {
	_, price, ok := lookupItem(itemType, itemID)
	if !ok {
		return 0, errItemNotFound
	}

	if p.Money < price {
		return 0, errNotEnoughMoney
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE players
		SET money = money - $2,
			last_active_at = NOW()
		WHERE id = $1
	`, p.ID, price)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`
		UPDATE inventory
		SET equipped = FALSE
		WHERE player_id = $1 AND item_type = $2
	`, p.ID, itemType)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`
		INSERT INTO inventory (player_id, item_type, item_id, equipped, acquired_at)
		VALUES ($1, $2, $3, TRUE, NOW())
	`, p.ID, itemType, itemID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	p.Money -= price
	return price, nil
}
