package sqlinline

const QInsertStaffUser = `--sql 2c2732f1-c65c-4e5c-8950-28ea165b983d
insert into staff_users(id, username, name, email, password_hash, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::timestamptz);
`

const QSelectStaffUserByID = `--sql dfa253f1-a9e1-446f-9d0f-695b025eb5a5
select id::text, username, name, email, password_hash, created_at
from staff_users
where id = $1::uuid
limit 1;
`

const QSelectStaffUserByUsername = `--sql 6fc5d88d-188a-4815-8cc0-28fa343e2533
select id::text, username, name, email, password_hash, created_at
from staff_users
where lower(username) = lower($1::text)
limit 1;
`

const QUpdateStaffPassword = `--sql 7392cce5-89f3-4c36-b878-2c84d1b892d9
update staff_users
set password_hash = $2::text
where lower(username) = lower($1::text);
`
