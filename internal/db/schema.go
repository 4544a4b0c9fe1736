package database

import "database/sql"

// Schema holds the DDL for the account book tables. Every table shares the
// same audit columns: reg_dt is set once, upd_dt is refreshed on mutation,
// and deletion is a soft transition of is_deleted plus del_dt.
const Schema = `
CREATE TABLE IF NOT EXISTS tb_members (
    member_no    SERIAL PRIMARY KEY,
    member_id    VARCHAR(30) NOT NULL UNIQUE,
    member_pw    VARCHAR(128) NOT NULL,
    member_name  VARCHAR(20) NOT NULL,
    member_email VARCHAR(50) NOT NULL,
    reg_dt       TIMESTAMP NOT NULL DEFAULT NOW(),
    upd_dt       TIMESTAMP NOT NULL DEFAULT NOW(),
    is_deleted   BOOLEAN NOT NULL DEFAULT FALSE,
    del_dt       TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tb_category (
    category_no   SERIAL PRIMARY KEY,
    member_no     INTEGER REFERENCES tb_members (member_no),
    category_name VARCHAR(50) NOT NULL,
    inout_type    VARCHAR(10) NOT NULL,
    has_children  BOOLEAN NOT NULL DEFAULT FALSE,
    parent_no     INTEGER REFERENCES tb_category (category_no),
    class_name    VARCHAR(30),
    sort_order    INTEGER NOT NULL DEFAULT 0,
    reg_dt        TIMESTAMP NOT NULL DEFAULT NOW(),
    upd_dt        TIMESTAMP NOT NULL DEFAULT NOW(),
    is_deleted    BOOLEAN NOT NULL DEFAULT FALSE,
    del_dt        TIMESTAMP
);

CREATE INDEX IF NOT EXISTS ix_category__member_no ON tb_category (member_no);

CREATE TABLE IF NOT EXISTS tb_account_log (
    account_log_no SERIAL PRIMARY KEY,
    member_no      INTEGER NOT NULL REFERENCES tb_members (member_no),
    std_date       DATE NOT NULL,
    opponent_name  VARCHAR(150) NOT NULL,
    reg_dt         TIMESTAMP NOT NULL DEFAULT NOW(),
    upd_dt         TIMESTAMP NOT NULL DEFAULT NOW(),
    is_deleted     BOOLEAN NOT NULL DEFAULT FALSE,
    del_dt         TIMESTAMP
);

CREATE INDEX IF NOT EXISTS ix_account_log__member_no ON tb_account_log (member_no);

CREATE TABLE IF NOT EXISTS tb_log_detail (
    log_detail_no   SERIAL PRIMARY KEY,
    account_log_no  INTEGER NOT NULL REFERENCES tb_account_log (account_log_no),
    detail_contents VARCHAR(300) NOT NULL,
    amounts         BIGINT NOT NULL,
    inout_type      VARCHAR(10) NOT NULL,
    category_no     INTEGER REFERENCES tb_category (category_no),
    important       SMALLINT NOT NULL DEFAULT 1,
    is_fixed_cost   BOOLEAN NOT NULL DEFAULT FALSE,
    reg_dt          TIMESTAMP NOT NULL DEFAULT NOW(),
    upd_dt          TIMESTAMP NOT NULL DEFAULT NOW(),
    is_deleted      BOOLEAN NOT NULL DEFAULT FALSE,
    del_dt          TIMESTAMP
);

CREATE INDEX IF NOT EXISTS ix_log_detail__account_log_no ON tb_log_detail (account_log_no);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
