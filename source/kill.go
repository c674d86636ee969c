// Copyright 2018-19 PJ Engineering and Business Solutions Pty. Ltd. All rights reserved.

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func determineConnectionID(ctx context.Context, conn *sqlx.Conn) (string, error) {
	var connectionID string
	if err := conn.QueryRowxContext(ctx, "SELECT CONNECTION_ID()").Scan(&connectionID); err != nil {
		return "", fmt.Errorf("source: cannot determine connection id: %w", err)
	}
	return connectionID, nil
}

// kill is used to kill a running query.
// db must be another pool than the one the connection was derived from,
// otherwise the KILL could queue behind the query it is meant to stop.
func kill(db *sqlx.DB, connectionID string, kto time.Duration) error {
	if connectionID == "" {
		return nil
	}

	var qry = fmt.Sprintf("KILL QUERY %s", connectionID)

	if kto == 0 {
		_, err := db.Exec(qry)
		return err
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), kto)
	defer cancelFunc()
	_, err := db.ExecContext(ctx, qry)
	return err
}
