package sqlinline

const QInsertDonor = `--sql 4cdc51d7-d2cc-42d5-90a3-d2dc9853362b
insert into donors(id, name, contact, monthly_amount, is_active, created_at, updated_at)
values ($1::uuid, $2::text, nullif($3::text, ''), $4::numeric, $5::boolean, $6::timestamptz, $6::timestamptz);
`

const QSelectDonorByID = `--sql cc8d7161-4b55-4ce5-96f0-82292243d8ba
select id::text, name, contact, monthly_amount, is_active, created_at, updated_at
from donors
where id = $1::uuid
limit 1;
`

const QListDonors = `--sql 78e41ad7-a54b-4d2a-aa49-9a95dc63a135
select id::text, name, contact, monthly_amount, is_active, created_at, updated_at
from donors
order by name asc;
`

const QListActiveDonors = `--sql 4824795e-5074-4129-8e0d-d62c25f02e2d
select id::text, name, contact, monthly_amount, is_active, created_at, updated_at
from donors
where is_active
order by name asc;
`

const QCountActiveDonors = `--sql 261e4231-0365-4f4b-a005-b42fb806c632
select count(*)::int
from donors
where is_active;
`

const QUpdateDonor = `--sql 481ce30d-4fef-40c2-b943-1a36ebac9c69
update donors
set name = $2::text,
    contact = nullif($3::text, ''),
    monthly_amount = $4::numeric,
    is_active = $5::boolean,
    updated_at = $6::timestamptz
where id = $1::uuid;
`

const QDeleteDonor = `--sql 6d72bdad-cd2b-4bf4-a476-6f52fdce6109
delete from donors
where id = $1::uuid;
`
