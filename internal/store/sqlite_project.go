package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"planner-cli/internal/model"
)

const sqliteSchemaVersion = 1

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateProjectSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateProjectSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS project_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS groups (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS members (
			group_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			PRIMARY KEY (group_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			predecessor_id INTEGER NOT NULL,
			successor_id INTEGER NOT NULL,
			type TEXT NOT NULL,
			json TEXT NOT NULL,
			PRIMARY KEY (predecessor_id, successor_id)
		);`,
		`CREATE TABLE IF NOT EXISTS resources (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY,
			task_id INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id INTEGER PRIMARY KEY,
			task_id INTEGER NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS holidays (
			date TEXT PRIMARY KEY,
			json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_task ON attachments(task_id);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func loadProjectSQLite(ctx context.Context, path string) (model.Project, error) {
	var doc model.Project
	if _, err := os.Stat(path); err != nil {
		return doc, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return doc, err
	}
	defer db.Close()

	meta := map[string]string{}
	rows, err := db.QueryContext(ctx, `SELECT k, v FROM project_meta`)
	if err != nil {
		return doc, err
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			_ = rows.Close()
			return doc, err
		}
		meta[k] = v
	}
	if err := rows.Close(); err != nil {
		return doc, err
	}
	if v, ok := meta["version"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n > sqliteSchemaVersion {
			return doc, fmt.Errorf("unsupported project db version %q", v)
		}
	}
	doc.Name = meta["name"]

	if doc.Tasks, err = readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks ORDER BY id`); err != nil {
		return doc, err
	}
	if doc.Groups, err = readJSONRows[model.Group](ctx, db, `SELECT json FROM groups ORDER BY id`); err != nil {
		return doc, err
	}
	if doc.Links, err = readJSONRows[model.Link](ctx, db, `SELECT json FROM links ORDER BY predecessor_id, successor_id`); err != nil {
		return doc, err
	}
	if doc.Resources, err = readJSONRows[model.Resource](ctx, db, `SELECT json FROM resources ORDER BY id`); err != nil {
		return doc, err
	}
	if doc.Comments, err = readJSONRows[model.Comment](ctx, db, `SELECT json FROM comments ORDER BY id`); err != nil {
		return doc, err
	}
	if doc.Attachments, err = readJSONRows[model.Attachment](ctx, db, `SELECT json FROM attachments ORDER BY id`); err != nil {
		return doc, err
	}
	if doc.Holidays, err = readJSONRows[model.Holiday](ctx, db, `SELECT json FROM holidays ORDER BY date`); err != nil {
		return doc, err
	}

	members, err := readMembers(ctx, db)
	if err != nil {
		return doc, err
	}
	doc.Members = members[model.RootGroupID]
	for i := range doc.Groups {
		doc.Groups[i].Members = members[doc.Groups[i].ID]
	}
	return doc, nil
}

func readMembers(ctx context.Context, db *sql.DB) (map[int][]model.Member, error) {
	rows, err := db.QueryContext(ctx, `SELECT group_id, json FROM members ORDER BY group_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int][]model.Member{}
	for rows.Next() {
		var gid int
		var js string
		if err := rows.Scan(&gid, &js); err != nil {
			return nil, err
		}
		var m model.Member
		if err := json.Unmarshal([]byte(js), &m); err != nil {
			return nil, err
		}
		out[gid] = append(out[gid], m)
	}
	return out, rows.Err()
}

// saveProjectSQLite replaces the whole database content in one transaction.
func saveProjectSQLite(ctx context.Context, path string, doc model.Project) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"project_meta", "tasks", "groups", "members", "links", "resources", "comments", "attachments", "holidays"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"version": strconv.Itoa(sqliteSchemaVersion),
		"name":    doc.Name,
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO project_meta(k, v) VALUES(?, ?)`, k, meta[k]); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for _, t := range doc.Tasks {
		raw, _ := json.Marshal(t)
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(id, title, json, updated_at_unixms) VALUES(?, ?, ?, ?)`, t.ID, t.Title, string(raw), nowMs); err != nil {
			return err
		}
	}
	if err := insertMembers(ctx, tx, model.RootGroupID, doc.Members); err != nil {
		return err
	}
	for _, g := range doc.Groups {
		members := g.Members
		g.Members = nil
		raw, _ := json.Marshal(g)
		if _, err := tx.ExecContext(ctx, `INSERT INTO groups(id, title, json, updated_at_unixms) VALUES(?, ?, ?, ?)`, g.ID, g.Title, string(raw), nowMs); err != nil {
			return err
		}
		if err := insertMembers(ctx, tx, g.ID, members); err != nil {
			return err
		}
	}
	for _, l := range doc.Links {
		raw, _ := json.Marshal(l)
		if _, err := tx.ExecContext(ctx, `INSERT INTO links(predecessor_id, successor_id, type, json) VALUES(?, ?, ?, ?)`, l.Predecessor, l.Successor, string(l.Type), string(raw)); err != nil {
			return err
		}
	}
	for _, r := range doc.Resources {
		raw, _ := json.Marshal(r)
		if _, err := tx.ExecContext(ctx, `INSERT INTO resources(id, name, json) VALUES(?, ?, ?)`, r.ID, r.Name, string(raw)); err != nil {
			return err
		}
	}
	for _, c := range doc.Comments {
		raw, _ := json.Marshal(c)
		if _, err := tx.ExecContext(ctx, `INSERT INTO comments(id, task_id, json) VALUES(?, ?, ?)`, c.ID, c.Task, string(raw)); err != nil {
			return err
		}
	}
	for _, a := range doc.Attachments {
		raw, _ := json.Marshal(a)
		if _, err := tx.ExecContext(ctx, `INSERT INTO attachments(id, task_id, json) VALUES(?, ?, ?)`, a.ID, a.Task, string(raw)); err != nil {
			return err
		}
	}
	for _, h := range doc.Holidays {
		raw, _ := json.Marshal(h)
		if _, err := tx.ExecContext(ctx, `INSERT INTO holidays(date, json) VALUES(?, ?)`, h.Date, string(raw)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertMembers(ctx context.Context, tx *sql.Tx, groupID int, members []model.Member) error {
	for i, m := range members {
		if m.Task != 0 && m.Group != 0 {
			return errors.New("member names both a task and a group")
		}
		raw, _ := json.Marshal(m)
		if _, err := tx.ExecContext(ctx, `INSERT INTO members(group_id, position, json) VALUES(?, ?, ?)`, groupID, i, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
