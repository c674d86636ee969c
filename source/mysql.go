// Copyright 2018-19 PJ Engineering and Business Solutions Pty. Ltd. All rights reserved.

package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/l2project/pointplot"
	"github.com/sirupsen/logrus"
)

type pointRow struct {
	File  string  `db:"file"`
	Group string  `db:"grp"`
	X     float64 `db:"x"`
	Y     float64 `db:"y"`
}

// MySQL reads points from a table with the columns id, file, grp, x and y.
// Rows come back in id order.
//
// A query whose context is canceled is stopped on the server with KILL
// QUERY, sent through a separate pool of killPoolSize connections.
type MySQL struct {
	db          *sqlx.DB
	killPool    *sqlx.DB
	killTimeout time.Duration
	table       string
}

// OpenMySQL connects lazily; the first query reports an unreachable server.
func OpenMySQL(dsn string) (*MySQL, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	_ = mysql.SetLogger(log.WithField("component", "mysql"))

	connector, err := mysql.NewConnector(&cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	killConnector, err := mysql.NewConnector(&cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	var killPool = sql.OpenDB(killConnector)
	killPool.SetMaxOpenConns(cfg.killPoolSize)
	return &MySQL{
		db:          sqlx.NewDb(sql.OpenDB(connector), "mysql"),
		killPool:    sqlx.NewDb(killPool, "mysql"),
		killTimeout: cfg.killTimeout,
		table:       cfg.Table(),
	}, nil
}

func (m *MySQL) Points(ctx context.Context) ([]pointplot.Point, error) {
	conn, err := m.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer conn.Close()

	connectionID, err := determineConnectionID(ctx, conn)
	if err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	killed := make(chan struct{})
	go func() {
		defer close(killed)
		select {
		case <-ctx.Done():
			if err := kill(m.killPool, connectionID, m.killTimeout); err != nil {
				log.WithFields(logrus.Fields{
					"connection":    connectionID,
					logrus.ErrorKey: err,
				}).Warn("cannot kill query")
			}
		case <-stop:
		}
	}()

	var rows []pointRow
	qry := fmt.Sprintf("SELECT file, grp, x, y FROM `%s` ORDER BY id", m.table)
	err = conn.SelectContext(ctx, &rows, qry)
	close(stop)
	<-killed
	if err != nil {
		return nil, fmt.Errorf("source: query %s: %w", m.table, err)
	}

	points := make([]pointplot.Point, len(rows))
	for i, r := range rows {
		points[i] = pointplot.Point{File: r.File, Group: r.Group, X: r.X, Y: r.Y}
	}
	log.WithFields(logrus.Fields{"table": m.table, "points": len(points)}).Debug("read points from mysql")
	return points, nil
}

func (m *MySQL) Close() error {
	if err := m.killPool.Close(); err != nil {
		return err
	}
	return m.db.Close()
}
